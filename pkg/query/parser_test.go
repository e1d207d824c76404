package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(DefaultAliasTable(), 0.000001)
}

func TestParseDate(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"dash format", "2023-05-17 수질 데이터 알려줘", "2023-05-17"},
		{"slash format", "2023/05/17 수질 데이터", "2023/05/17"},
		{"dot format", "2023.05.17의 FAI값", "2023.05.17"},
		{"no date", "한강 상류 pH 알려줘", ""},
		{"date among ambiguous text", "측정일이 2023-05-17인 데이터 중 BOD", "2023-05-17"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Parse(tt.question).Date)
		})
	}
}

func TestParseNumericFilters(t *testing.T) {
	p := newTestParser()

	t.Run("longitude with Korean label", func(t *testing.T) {
		cond := p.Parse("경도 128.954044에서의 FAI값")
		require.Len(t, cond.NumericFilters, 1)
		assert.Equal(t, FieldLongitude, cond.NumericFilters[0].Field)
		assert.InDelta(t, 128.954044, cond.NumericFilters[0].Value, 1e-9)
	})

	t.Run("parenthesized Korean label", func(t *testing.T) {
		cond := p.Parse("경도(도) 128.954044 데이터")
		require.Len(t, cond.NumericFilters, 1)
		assert.Equal(t, FieldLongitude, cond.NumericFilters[0].Field)
	})

	t.Run("latitude and ph together", func(t *testing.T) {
		cond := p.Parse("위도 36.5 ph 7.2 데이터 보여줘")
		require.Len(t, cond.NumericFilters, 2)
		assert.Equal(t, FieldLatitude, cond.NumericFilters[0].Field)
		assert.Equal(t, FieldPH, cond.NumericFilters[1].Field)
		assert.InDelta(t, 7.2, cond.NumericFilters[1].Value, 1e-9)
	})

	t.Run("colon and particle separators", func(t *testing.T) {
		cond := p.Parse("위도는 36.5")
		require.Len(t, cond.NumericFilters, 1)
		assert.InDelta(t, 36.5, cond.NumericFilters[0].Value, 1e-9)

		cond = p.Parse("lat: 36.5")
		require.Len(t, cond.NumericFilters, 1)
		assert.Equal(t, FieldLatitude, cond.NumericFilters[0].Field)
	})

	t.Run("repeated label produces duplicate filters", func(t *testing.T) {
		cond := p.Parse("경도 128.9 그리고 경도 129.1")
		assert.Len(t, cond.NumericFilters, 2)
	})

	t.Run("tolerance comes from configuration", func(t *testing.T) {
		wide := NewParser(DefaultAliasTable(), 0.5)
		cond := wide.Parse("ph 7.0")
		require.Len(t, cond.NumericFilters, 1)
		assert.Equal(t, 0.5, cond.NumericFilters[0].Tolerance)
	})
}

func TestParseTextFilters(t *testing.T) {
	p := newTestParser()

	t.Run("classification code", func(t *testing.T) {
		cond := p.Parse("분류코드 2001G027")
		require.Len(t, cond.TextFilters, 1)
		assert.Equal(t, "분류코드", cond.TextFilters[0].Column)
		assert.Equal(t, "2001G027", cond.TextFilters[0].Value)
	})

	t.Run("trailing particles stripped from value", func(t *testing.T) {
		cond := p.Parse("분류코드 2001G027에서의 FAI값")
		require.NotEmpty(t, cond.TextFilters)
		assert.Equal(t, "2001G027", cond.TextFilters[0].Value)
	})

	t.Run("korean column and value", func(t *testing.T) {
		cond := p.Parse("조사구간명 한강상류")
		require.Len(t, cond.TextFilters, 1)
		assert.Equal(t, "조사구간명", cond.TextFilters[0].Column)
		assert.Equal(t, "한강상류", cond.TextFilters[0].Value)
	})

	t.Run("numeric alias labels never become text filters", func(t *testing.T) {
		cond := p.Parse("경도 128.954044")
		assert.Empty(t, cond.TextFilters)
	})

	t.Run("duplicate pairs collapsed", func(t *testing.T) {
		cond := p.Parse("분류코드 2001G027 그리고 분류코드 2001G027")
		assert.Len(t, cond.TextFilters, 1)
	})
}

func TestParseTargetColumns(t *testing.T) {
	p := newTestParser()

	t.Run("single metric with suffix", func(t *testing.T) {
		cond := p.Parse("경도 128.954044에서의 FAI값")
		assert.Equal(t, []string{"FAI"}, cond.TargetColumns)
	})

	t.Run("case insensitive", func(t *testing.T) {
		cond := p.Parse("fai 알려줘")
		assert.Equal(t, []string{"FAI"}, cond.TargetColumns)
	})

	t.Run("multiple metrics in table order", func(t *testing.T) {
		cond := p.Parse("bod와 fai 알려줘")
		assert.Equal(t, []string{"FAI", "BOD"}, cond.TargetColumns)
	})

	t.Run("tn and tp spellings", func(t *testing.T) {
		cond := p.Parse("t-n값과 tp값")
		assert.Equal(t, []string{"T-N", "T-P"}, cond.TargetColumns)
	})

	t.Run("no duplicates", func(t *testing.T) {
		cond := p.Parse("FAI값 그리고 fai")
		assert.Equal(t, []string{"FAI"}, cond.TargetColumns)
	})
}

func TestParseNeverFails(t *testing.T) {
	p := newTestParser()

	for _, q := range []string{"", "   ", "안녕하세요", "?!#$%"} {
		cond := p.Parse(q)
		assert.True(t, cond.IsEmpty(), "question %q should yield empty conditions", q)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	p := newTestParser()
	q := "2023-05-17 분류코드 2001G027에서의 FAI값과 ph 7.2"

	first := p.Parse(q)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, p.Parse(q))
	}
}
