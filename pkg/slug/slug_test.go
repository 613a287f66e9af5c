package slug_test

import (
	"testing"

	"github.com/dirmaster/dirmaster-backend/pkg/slug"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Acme":               "acme",
		"Acme Corp":          "acme-corp",
		"  Hello   World  ":  "hello-world",
		"Already-slugged":    "already-slugged",
		"under_scores_too":   "under-scores-too",
		"Symbols!@# Removed": "symbols-removed",
		"Trailing dash - ":   "trailing-dash",
		"":                   "",
	}
	for in, want := range cases {
		require.Equal(t, want, slug.Make(in), "input %q", in)
	}
}
