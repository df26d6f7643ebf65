package resolver

// AliasEntry is a language-tagged synonym in the local fallback table.
type AliasEntry struct {
	Term     string
	Language string
}

// AliasTable maps canonical product names to their known synonyms. It is
// the offline fallback when the alias store is unreachable.
type AliasTable map[string][]AliasEntry

// DefaultAliasTable covers the staple catalog in English and Yoruba.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		"Palm Oil": {
			{Term: "palm oil", Language: "en"},
			{Term: "epo pupa", Language: "yo"},
			{Term: "epo", Language: "yo"},
			{Term: "red oil", Language: "en"},
		},
		"Egusi": {
			{Term: "egusi", Language: "yo"},
			{Term: "melon seeds", Language: "en"},
			{Term: "ground egusi", Language: "en"},
		},
		"Garri": {
			{Term: "garri", Language: "yo"},
			{Term: "gari", Language: "yo"},
			{Term: "cassava flakes", Language: "en"},
		},
		"Pounded Yam Flour": {
			{Term: "poundo", Language: "en"},
			{Term: "iyan", Language: "yo"},
			{Term: "pounded yam", Language: "en"},
		},
		"Yam": {
			{Term: "yam", Language: "en"},
			{Term: "isu", Language: "yo"},
			{Term: "puna yam", Language: "en"},
		},
		"Rice": {
			{Term: "rice", Language: "en"},
			{Term: "iresi", Language: "yo"},
			{Term: "ofada rice", Language: "yo"},
		},
		"Beans": {
			{Term: "beans", Language: "en"},
			{Term: "ewa", Language: "yo"},
			{Term: "honey beans", Language: "en"},
			{Term: "oloyin", Language: "yo"},
		},
		"Plantain": {
			{Term: "plantain", Language: "en"},
			{Term: "ogede", Language: "yo"},
			{Term: "dodo", Language: "yo"},
		},
		"Stockfish": {
			{Term: "stockfish", Language: "en"},
			{Term: "panla", Language: "yo"},
			{Term: "okporoko", Language: "yo"},
		},
		"Crayfish": {
			{Term: "crayfish", Language: "en"},
			{Term: "ground crayfish", Language: "en"},
		},
		"Scotch Bonnet": {
			{Term: "scotch bonnet", Language: "en"},
			{Term: "ata rodo", Language: "yo"},
			{Term: "rodo", Language: "yo"},
		},
		"Ogbono": {
			{Term: "ogbono", Language: "yo"},
			{Term: "apon", Language: "yo"},
			{Term: "wild mango seed", Language: "en"},
		},
		"Ewedu": {
			{Term: "ewedu", Language: "yo"},
			{Term: "jute leaves", Language: "en"},
		},
		"Bitter Leaf": {
			{Term: "bitter leaf", Language: "en"},
			{Term: "ewuro", Language: "yo"},
		},
	}
}
