package source

import (
	"sort"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/sentences"
	"github.com/clipperhouse/uax29/v2/words"
)

const (
	maxKeywords      = 10
	summarySentences = 3
	minKeywordLength = 4
)

var stopwords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "also": true,
	"been": true, "before": true, "being": true, "below": true, "between": true,
	"both": true, "could": true, "does": true, "doing": true,
	"down": true, "during": true, "each": true, "from": true, "further": true,
	"have": true, "having": true, "here": true, "into": true, "itself": true,
	"just": true, "more": true, "most": true, "once": true, "only": true,
	"other": true, "over": true, "said": true, "same": true, "says": true,
	"should": true, "some": true, "such": true, "than": true, "that": true,
	"their": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "under": true,
	"until": true, "very": true, "were": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true,
}

// extractKeywords returns the most frequent content words of the text,
// most frequent first, ties broken alphabetically.
func extractKeywords(text string, limit int) []string {
	freq := make(map[string]int)

	tokens := words.FromString(strings.ToLower(text))
	for tokens.Next() {
		w := strings.TrimSpace(tokens.Value())
		if len(w) < minKeywordLength || stopwords[w] || !isWordLike(w) {
			continue
		}
		freq[w]++
	}
	if len(freq) == 0 {
		return nil
	}

	ranked := make([]string, 0, len(freq))
	for w := range freq {
		ranked = append(ranked, w)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if freq[ranked[i]] != freq[ranked[j]] {
			return freq[ranked[i]] > freq[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// summarize picks the sentences scoring highest on keyword overlap and
// joins them in document order.
func summarize(text string, keywords []string, limit int) string {
	if text == "" || limit < 1 {
		return ""
	}

	kw := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		kw[k] = true
	}

	type scored struct {
		index int
		score int
		text  string
	}
	var all []scored

	iter := sentences.FromString(text)
	for iter.Next() {
		sent := strings.TrimSpace(iter.Value())
		if sent == "" {
			continue
		}
		score := 0
		st := words.FromString(strings.ToLower(sent))
		for st.Next() {
			if kw[strings.TrimSpace(st.Value())] {
				score++
			}
		}
		all = append(all, scored{index: len(all), score: score, text: sent})
	}
	if len(all) == 0 {
		return ""
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	top := all[:min(limit, len(all))]
	sort.Slice(top, func(i, j int) bool { return top[i].index < top[j].index })

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.text
	}
	return strings.Join(parts, " ")
}

func isWordLike(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
