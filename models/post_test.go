package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPreviewShortTextUnchanged(t *testing.T) {
	post := &Post{Text: "short"}
	require.Equal(t, "short", post.Preview())
}

func TestPreviewTruncatesToFifteenRunes(t *testing.T) {
	post := &Post{Text: strings.Repeat("a", 40)}
	require.Equal(t, strings.Repeat("a", PreviewLength), post.Preview())
}

// Усечение считает руны, не байты
func TestPreviewCountsRunes(t *testing.T) {
	post := &Post{Text: "Тестовый пост без группы"}
	require.Equal(t, "Тестовый пост б", post.Preview())

	exact := &Post{Text: "ровно 15 симв.."}
	require.Equal(t, exact.Text, exact.Preview())
}
