package manual

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

func newTestSearcher() *Searcher {
	return NewSearcher(DefaultManuals(), zap.NewNop())
}

func TestSearchRanking(t *testing.T) {
	s := newTestSearcher()

	t.Run("title match ranks first", func(t *testing.T) {
		docs := s.Search("수질 사고")
		require.NotEmpty(t, docs)
		assert.Equal(t, "수질 사고 긴급 대응 메뉴얼", docs[0].Title)
	})

	t.Run("keyword match finds algae manuals", func(t *testing.T) {
		docs := s.Search("녹조가 심각해요")
		require.NotEmpty(t, docs)
		assert.Equal(t, "조류 대량 발생 긴급 대응 메뉴얼", docs[0].Title)
	})

	t.Run("flood keywords", func(t *testing.T) {
		docs := s.Search("홍수 수위 상승")
		require.NotEmpty(t, docs)
		assert.Equal(t, "홍수 긴급 대응 메뉴얼", docs[0].Title)
	})

	t.Run("at most five results", func(t *testing.T) {
		docs := s.Search("수질 조류 홍수 영양염류 관리 대응 가이드 메뉴얼")
		assert.LessOrEqual(t, len(docs), 5)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, s.Search("날씨 좋네요"))
	})

	t.Run("empty query yields empty", func(t *testing.T) {
		assert.Empty(t, s.Search("   "))
	})
}

func TestByType(t *testing.T) {
	s := newTestSearcher()

	doc, ok := s.ByType("algae_emergency")
	require.True(t, ok)
	assert.Equal(t, "조류 대량 발생 긴급 대응 메뉴얼", doc.Title)

	_, ok = s.ByType("unknown_type")
	assert.False(t, ok)
}

func TestLoadManuals(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manuals.yaml")
	corpus := `- id: 1
  title: "테스트 메뉴얼"
  type: "test_manual"
  keywords: ["테스트"]
  content: "내용"
`
	require.NoError(t, os.WriteFile(path, []byte(corpus), 0o600))

	docs, err := LoadManuals(path)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, models.ManualDocument{
		ID:       1,
		Title:    "테스트 메뉴얼",
		Type:     "test_manual",
		Keywords: []string{"테스트"},
		Content:  "내용",
	}, docs[0])

	_, err = LoadManuals(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
