package loot

// Display names for the reward ids the redeem endpoint hands back. These
// are maintained by hand; cmd/heroinfo dumps the current hero table from
// the game's public champions JSON when it needs updating.

var chestNames = map[int]string{
	2:   "Gold",
	22:  "Gold Zorbu",
	30:  "Gold Nrakk",
	37:  "Gold Supply",
	263: "Gold Orkira",
	282: "Electrum",
	335: "Gold D'Hani",
	339: "Gold Widdle",
	352: "Silver Gazrick",
	353: "Gold Gazrick",
}

var heroNames = map[int]string{
	1:  "Bruenor",
	2:  "Celeste",
	3:  "Nayeli",
	4:  "Jarlaxle",
	5:  "Calliope",
	6:  "Asharra",
	7:  "Minsc",
	8:  "Delina",
	9:  "Makos",
	10: "Tyril",
	11: "Jamilah",
	12: "Arkhan",
	13: "Hitch",
	14: "Stoki",
	15: "Krond",
	16: "Gromma",
	17: "Dhadius",
	18: "Drizzt",
	19: "Barrowin",
	20: "Regis",
	21: "Birdsong",
	22: "Zorbu",
	23: "Strix",
	24: "Nrakk",
	25: "Catti-brie",
	26: "Evelyn",
	27: "Binwin",
	28: "Deekin",
	29: "Xander",
	30: "Azaka",
	31: "Ishi",
	32: "Wulfgar",
	33: "Farideh",
	34: "Donaar",
	35: "Vlahnya",
	36: "Warden",
	37: "Nerys",
	38: "K'thriss",
	39: "Paultin",
	40: "Black Viper",
	41: "Rosie",
	42: "Aila",
	43: "Spurt",
	44: "Qillek",
	45: "Korth",
	46: "Walnut",
	47: "Shandie",
	48: "Jim",
	49: "Turiel",
	50: "Pwent",
	51: "Avren",
	52: "Sentry",
	53: "Krull",
	54: "Artemis",
	55: "Môrgæn",
	56: "Havilar",
	57: "Sisaspia",
	58: "Briv",
	59: "Melf",
	60: "Krydle",
	61: "Jaheira",
	62: "Nova",
	63: "Freely",
	64: "Beadle & Grimm",
	65: "Omin",
	66: "Lazaapz",
	67: "Dragonbait",
	68: "Ulkoria",
	69: "Torogar",
	70: "Ezmerelda",
	71: "Penelope",
	72: "Lucius",
	73: "Baeloth",
	74: "Talin",
	75: "Hew Maan",
	76: "Orisha",
	77: "Alyndra",
	78: "Orkira",
	79: "Shaka",
	80: "Mehen",
	81: "Selise",
	82: "Sgt. Knox",
	83: "Ellywick",
	84: "Prudence",
	85: "Corazón",
	86: "Reya",
	87: "NERDS",
	88: "Xerophon",
	89: "D'hani",
	90: "Brig",
	91: "Widdle",
	92: "Yorven",
	93: "Viconia",
	94: "Rust",
	95: "Vi",
}

var skinNames = map[int]string{
	131: "Icewind Dale",
}
