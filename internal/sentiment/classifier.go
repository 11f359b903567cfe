package sentiment

import (
	_ "embed"
	"regexp"
	"strings"

	"trendlens/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

type lexicon struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// Result is a sentiment classification outcome. Score is in [-1, 1].
type Result struct {
	Label model.Sentiment
	Score float64
}

// Classifier assigns sentiment labels using two fixed keyword lexicons.
// It is stateless after construction, so a single instance is safe to share.
type Classifier struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

// NewClassifier builds a classifier from the embedded lexicon file.
func NewClassifier() *Classifier {
	var lex lexicon
	if err := yaml.Unmarshal(lexiconYAML, &lex); err != nil {
		panic("sentiment: bad embedded lexicon: " + err.Error())
	}
	c := &Classifier{
		positive: make(map[string]struct{}, len(lex.Positive)),
		negative: make(map[string]struct{}, len(lex.Negative)),
	}
	for _, w := range lex.Positive {
		c.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range lex.Negative {
		c.negative[strings.ToLower(w)] = struct{}{}
	}
	return c
}

// wordRe tokenizes on word boundaries so lexicon entries only match whole
// words ("badly" never counts as "bad").
var wordRe = regexp.MustCompile(`[a-z0-9_]+`)

// Classify scores a text against the lexicons. Every whole-word occurrence
// counts; score = (pos - neg) / (pos + neg), or 0 with no matches. Labels:
// score > 0.1 positive, score < -0.1 negative, otherwise neutral.
func (c *Classifier) Classify(text string) Result {
	if text == "" {
		return Result{Label: model.SentimentNeutral, Score: 0}
	}

	var pos, neg int
	for _, word := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if _, ok := c.positive[word]; ok {
			pos++
		}
		if _, ok := c.negative[word]; ok {
			neg++
		}
	}

	var score float64
	if total := pos + neg; total > 0 {
		score = float64(pos-neg) / float64(total)
	}

	label := model.SentimentNeutral
	switch {
	case score > 0.1:
		label = model.SentimentPositive
	case score < -0.1:
		label = model.SentimentNegative
	}
	return Result{Label: label, Score: score}
}

// Apply classifies each item over its title and content (title first,
// space-joined) and writes the label back onto the item in place.
func (c *Classifier) Apply(items []model.TrendItem) {
	for i := range items {
		text := strings.TrimSpace(items[i].Title + " " + items[i].Content)
		items[i].Sentiment = c.Classify(text).Label
	}
}
