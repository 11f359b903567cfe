package sentiment

import (
	"testing"

	"trendlens/internal/model"
)

func TestClassifyEmpty(t *testing.T) {
	c := NewClassifier()
	res := c.Classify("")
	if res.Label != model.SentimentNeutral || res.Score != 0 {
		t.Fatalf("Classify(\"\") = %+v, want neutral/0", res)
	}
}

func TestClassifyLabels(t *testing.T) {
	c := NewClassifier()
	cases := []struct {
		text  string
		label model.Sentiment
		score float64
	}{
		{"great great", model.SentimentPositive, 1},
		{"bad", model.SentimentNegative, -1},
		{"the cat sat", model.SentimentNeutral, 0},
		{"good but broken", model.SentimentNeutral, 0},
		{"Love it, LOVE it, hate it", model.SentimentPositive, 1.0 / 3.0},
	}
	for _, tc := range cases {
		res := c.Classify(tc.text)
		if res.Label != tc.label {
			t.Errorf("Classify(%q) label = %s, want %s", tc.text, res.Label, tc.label)
		}
		if diff := res.Score - tc.score; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Classify(%q) score = %v, want %v", tc.text, res.Score, tc.score)
		}
	}
}

func TestClassifyWholeWordsOnly(t *testing.T) {
	c := NewClassifier()
	// "badly" must not match "bad".
	if res := c.Classify("things went badly"); res.Label != model.SentimentNeutral {
		t.Errorf("Classify(\"things went badly\") = %+v, want neutral", res)
	}
	// Punctuation still forms a word boundary.
	if res := c.Classify("bad."); res.Label != model.SentimentNegative {
		t.Errorf("Classify(\"bad.\") = %+v, want negative", res)
	}
}

func TestApplyWritesLabels(t *testing.T) {
	c := NewClassifier()
	items := []model.TrendItem{
		{Title: "Great launch", Content: "love the new design"},
		{Title: "", Content: "worst release, broken everywhere"},
		{Title: "weekly thread", Content: ""},
	}
	c.Apply(items)
	want := []model.Sentiment{model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral}
	for i, w := range want {
		if items[i].Sentiment != w {
			t.Errorf("item %d sentiment = %s, want %s", i, items[i].Sentiment, w)
		}
	}
	if items[0].Title != "Great launch" || items[0].Content != "love the new design" {
		t.Errorf("Apply must not modify other fields: %+v", items[0])
	}
}
