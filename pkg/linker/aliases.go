package linker

// defaultAliases maps common abbreviations and short forms to canonical
// titles. Keys are stored normalized lower-case.
func defaultAliases() map[string]string {
	return map[string]string{
		"aot":              "Attack on Titan",
		"snk":              "Shingeki no Kyojin",
		"mha":              "My Hero Academia",
		"bnha":             "Boku no Hero Academia",
		"kny":              "Kimetsu no Yaiba",
		"ds":               "Demon Slayer",
		"op":               "One Piece",
		"jjk":              "Jujutsu Kaisen",
		"csm":              "Chainsaw Man",
		"sao":              "Sword Art Online",
		"re:zero":          "Re:Zero kara Hajimeru Isekai Seikatsu",
		"konosuba":         "Kono Subarashii Sekai ni Shukufuku wo!",
		"oregairu":         "Yahari Ore no Seishun Love Comedy wa Machigatteiru",
		"danmachi":         "Dungeon ni Deai wo Motomeru no wa Machigatteiru Darou ka",
		"fate/stay night":  "Fate/stay night",
		"fate/zero":        "Fate/Zero",
		"fgo":              "Fate/Grand Order",
		"fma":              "Fullmetal Alchemist",
		"fmab":             "Fullmetal Alchemist: Brotherhood",
		"hxh":              "Hunter x Hunter",
		"yyh":              "Yu Yu Hakusho",
		"dbz":              "Dragon Ball Z",
		"dbs":              "Dragon Ball Super",
		"naruto shippuden": "Naruto: Shippuuden",
		"boruto":           "Boruto: Naruto Next Generations",
		"bleach tybw":      "Bleach: Thousand-Year Blood War",
		"spy x family":     "SPY×FAMILY",
		"spyxfamily":       "SPY×FAMILY",
		"oshi no ko":       "Oshi no Ko",
		"frieren":          "Sousou no Frieren",
		"solo leveling":    "Solo Leveling",
	}
}
