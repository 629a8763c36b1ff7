package teamref

// Embedded defaults for the 2025 edition. These mirror the reference data
// shipped with the trained model; deployments override them through config
// when the tables are refreshed.

// defaultRankTable returns the FIFA ranking snapshot, display-locale keys.
func defaultRankTable() map[string]int {
	return map[string]int{
		"Maroc":           13,
		"Sénégal":         17,
		"Égypte":          33,
		"Côte d'Ivoire":   39,
		"Nigeria":         44,
		"Tunisie":         47,
		"Algérie":         48,
		"Cameroun":        49,
		"Mali":            51,
		"Afrique du Sud":  57,
		"RD Congo":        61,
		"Burkina Faso":    75,
		"Bénin":           91,
		"Tanzanie":        105,
		"Mozambique":      108,
		"Soudan":          123,
	}
}

// defaultTitleTable returns continental titles per team.
func defaultTitleTable() map[string]int {
	return map[string]int{
		"Égypte":         7,
		"Cameroun":       5,
		"Nigeria":        3,
		"Côte d'Ivoire":  3,
		"Algérie":        2,
		"RD Congo":       2,
		"Sénégal":        1,
		"Tunisie":        1,
		"Maroc":          1,
		"Afrique du Sud": 1,
		"Soudan":         1,
		"Mali":           0,
		"Burkina Faso":   0,
		"Bénin":          0,
		"Tanzanie":       0,
		"Mozambique":     0,
	}
}

// defaultHostTable returns tournament hosts per edition year, canonical
// names. 2012 was co-hosted.
func defaultHostTable() map[int][]string {
	return map[int][]string{
		2010: {"Angola"},
		2012: {"Equatorial Guinea", "Gabon"},
		2013: {"South Africa"},
		2015: {"Equatorial Guinea"},
		2017: {"Gabon"},
		2019: {"Egypt"},
		2022: {"Cameroon"},
		2024: {"Ivory Coast"},
		2025: {"Morocco"},
	}
}

// defaultNameMapping maps display-locale names to the canonical names used
// by the historical match dataset.
func defaultNameMapping() map[string]string {
	return map[string]string{
		"Maroc":          "Morocco",
		"Égypte":         "Egypt",
		"Côte d'Ivoire":  "Ivory Coast",
		"Afrique du Sud": "South Africa",
		"RD Congo":       "DR Congo",
		"Algérie":        "Algeria",
		"Burkina Faso":   "Burkina Faso",
		"Tanzanie":       "Tanzania",
		"Mozambique":     "Mozambique",
		"Mali":           "Mali",
		"Tunisie":        "Tunisia",
		"Nigeria":        "Nigeria",
		"Sénégal":        "Senegal",
		"Cameroun":       "Cameroon",
		"Bénin":          "Benin",
		"Soudan":         "Sudan",
	}
}
