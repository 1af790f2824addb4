// Command heroinfo dumps the hero id to name mapping from the game's public
// champions JSON, in the shape the loot tables are maintained in.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const championsURL = "https://idle.kleho.ru/cache/en/champions.json?t=1638996470"

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	body, err := fetch(championsURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to fetch champions data")
	}

	names, err := heroNames(body)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to decode champions data")
	}

	fmt.Println(render(names))
}

func fetch(url string) ([]byte, error) {
	client := &fasthttp.Client{
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := client.Do(req, resp); err != nil {
		return nil, err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("champions endpoint returned status %d", resp.StatusCode())
	}
	return append([]byte(nil), resp.Body()...), nil
}

func heroNames(body []byte) (map[int]string, error) {
	var payload struct {
		Data []struct {
			ID   json.RawMessage `json:"id"`
			Name string          `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(payload.Data))
	for _, hero := range payload.Data {
		// ids show up both as numbers and as quoted strings
		id, err := strconv.Atoi(strings.Trim(string(hero.ID), `"`))
		if err != nil {
			return nil, fmt.Errorf("unparseable hero id %s: %w", hero.ID, err)
		}
		names[id] = hero.Name
	}
	return names, nil
}

// render prints the mapping as JSON with keys in numeric order, which
// encoding/json's lexical map-key sort would not give us.
func render(names map[int]string) string {
	ids := make([]int, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, id := range ids {
		name, _ := json.Marshal(names[id])
		fmt.Fprintf(&buf, "  \"%d\": %s", id, name)
		if i < len(ids)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.String()
}
