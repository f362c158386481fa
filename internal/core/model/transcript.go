package model

// SentencePair is one row of the bilingual transcript. Pairing is positional:
// sentence i of the source is not guaranteed to be the true translation of
// sentence i on the other side.
type SentencePair struct {
	Source      string `json:"source"`
	Translation string `json:"translation"`
}

// ZipSentences pairs two sentence sequences index by index, right-padding the
// shorter one with empty strings so every sentence appears in some pair.
func ZipSentences(source, translation []string) []SentencePair {
	n := len(source)
	if len(translation) > n {
		n = len(translation)
	}
	pairs := make([]SentencePair, n)
	for i := 0; i < n; i++ {
		if i < len(source) {
			pairs[i].Source = source[i]
		}
		if i < len(translation) {
			pairs[i].Translation = translation[i]
		}
	}
	return pairs
}
