package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/models"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultAliasTable(), zap.NewNop())
}

func sampleColumns() []string {
	return []string{"분류코드", "조사구간명", "Date", "경도(도)", "위도(도)", "pH", "BOD", "FAI"}
}

func sampleRows() []models.Record {
	return []models.Record{
		{
			"분류코드": "2001G027", "조사구간명": "한강상류", "Date": "2023-05-17",
			"경도(도)": 128.954044, "위도(도)": 36.5, "pH": 7.2, "BOD": 1.5, "FAI": 12.0,
		},
		{
			"분류코드": "2001G028", "조사구간명": "한강하류", "Date": "2023-05-18",
			"경도(도)": 127.5, "위도(도)": 37.1, "pH": 6.8, "BOD": 2.5, "FAI": 45.0,
		},
		{
			"분류코드": "3001B001", "조사구간명": "낙동강", "Date": "2023-06-01",
			"경도(도)": 128.6, "위도(도)": 35.8, "pH": 8.1, "BOD": 0.8, "FAI": 85.0,
		},
	}
}

func TestExecuteNumericFilterScenario(t *testing.T) {
	e := newTestEngine()
	p := newTestParser()

	cond := p.Parse("경도 128.954044에서의 FAI값")
	result := e.Execute(sampleRows(), cond, sampleColumns())

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2001G027", result.Rows[0].StringAt("분류코드"))
	assert.Equal(t, []string{"FAI"}, result.TargetColumns)
}

func TestExecuteTextFilterScenario(t *testing.T) {
	e := newTestEngine()
	p := newTestParser()

	cond := p.Parse("분류코드 2001G027")
	result := e.Execute(sampleRows(), cond, sampleColumns())

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "한강상류", result.Rows[0].StringAt("조사구간명"))
	assert.Empty(t, result.TargetColumns)
}

func TestExecuteTextFilterContainment(t *testing.T) {
	e := newTestEngine()

	cond := models.QueryConditions{
		TextFilters: []models.TextFilter{{Column: "조사구간명", Value: "한강"}},
	}
	result := e.Execute(sampleRows(), cond, sampleColumns())
	assert.Len(t, result.Rows, 2)
}

func TestExecuteUnresolvedTextFilterIsNoOp(t *testing.T) {
	e := newTestEngine()

	cond := models.QueryConditions{
		TextFilters: []models.TextFilter{{Column: "없는컬럼", Value: "무언가"}},
	}
	result := e.Execute(sampleRows(), cond, sampleColumns())
	assert.Len(t, result.Rows, 3)
}

func TestExecuteDateFilter(t *testing.T) {
	e := newTestEngine()

	t.Run("dash literal", func(t *testing.T) {
		cond := models.QueryConditions{Date: "2023-05-17"}
		result := e.Execute(sampleRows(), cond, sampleColumns())
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "2023-05-17", result.Rows[0].StringAt("Date"))
	})

	t.Run("separator variants match stored value", func(t *testing.T) {
		rows := []models.Record{{"Date": "2023/05/17", "pH": 7.0}}
		cond := models.QueryConditions{Date: "2023-05-17"}
		result := e.Execute(rows, cond, []string{"Date", "pH"})
		assert.Len(t, result.Rows, 1)
	})

	t.Run("korean date column", func(t *testing.T) {
		rows := []models.Record{{"조사일자": "2023-05-17", "pH": 7.0}}
		cond := models.QueryConditions{Date: "2023-05-17"}
		result := e.Execute(rows, cond, []string{"조사일자", "pH"})
		assert.Len(t, result.Rows, 1)
	})

	t.Run("no date column skips the filter", func(t *testing.T) {
		rows := []models.Record{{"pH": 7.0}}
		cond := models.QueryConditions{Date: "2023-05-17"}
		result := e.Execute(rows, cond, []string{"pH"})
		assert.Len(t, result.Rows, 1)
	})
}

func TestExecuteNumericToleranceBoundary(t *testing.T) {
	e := newTestEngine()
	columns := []string{"pH"}
	rows := []models.Record{
		{"pH": 7.5},  // exactly on the boundary, inclusive
		{"pH": 7.75}, // just outside
	}

	cond := models.QueryConditions{
		NumericFilters: []models.NumericFilter{{Field: FieldPH, Value: 7.0, Tolerance: 0.5}},
	}
	result := e.Execute(rows, cond, columns)

	require.Len(t, result.Rows, 1)
	v, ok := result.Rows[0].FloatAt("pH")
	require.True(t, ok)
	assert.Equal(t, 7.5, v)
}

func TestExecuteNumericFallbackScan(t *testing.T) {
	e := newTestEngine()

	t.Run("unresolved column scans all fields", func(t *testing.T) {
		// No longitude-like column exists, but a field holds the value.
		rows := []models.Record{
			{"측정값A": 128.954044, "기타": "x"},
			{"측정값A": 10.0, "기타": "y"},
		}
		cond := models.QueryConditions{
			NumericFilters: []models.NumericFilter{{Field: FieldLongitude, Value: 128.954044, Tolerance: 0.000001}},
		}
		result := e.Execute(rows, cond, []string{"측정값A", "기타"})
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "x", result.Rows[0].StringAt("기타"))
	})

	t.Run("zero rows from resolved column also falls back", func(t *testing.T) {
		// 경도(도) resolves but holds no matching value; the value lives in
		// another column.
		rows := []models.Record{
			{"경도(도)": 1.0, "백업좌표": 128.954044},
			{"경도(도)": 2.0, "백업좌표": 3.0},
		}
		cond := models.QueryConditions{
			NumericFilters: []models.NumericFilter{{Field: FieldLongitude, Value: 128.954044, Tolerance: 0.000001}},
		}
		result := e.Execute(rows, cond, []string{"경도(도)", "백업좌표"})
		require.Len(t, result.Rows, 1)
		v, _ := result.Rows[0].FloatAt("백업좌표")
		assert.InDelta(t, 128.954044, v, 1e-9)
	})

	t.Run("fallback baseline is pre-this-filter working set", func(t *testing.T) {
		// The text filter narrows to one row first; the numeric fallback
		// scans only that row, not the original set.
		rows := sampleRows()
		cond := models.QueryConditions{
			TextFilters:    []models.TextFilter{{Column: "분류코드", Value: "2001G028"}},
			NumericFilters: []models.NumericFilter{{Field: FieldLongitude, Value: 128.954044, Tolerance: 0.000001}},
		}
		result := e.Execute(rows, cond, sampleColumns())
		assert.Empty(t, result.Rows)
	})
}

func TestExecuteDedup(t *testing.T) {
	e := newTestEngine()
	row := models.Record{"pH": 7.0, "분류코드": "A1"}
	dup := models.Record{"pH": 7.0, "분류코드": "A1"}
	other := models.Record{"pH": 6.5, "분류코드": "A2"}

	result := e.Execute([]models.Record{row, dup, other}, models.QueryConditions{}, []string{"pH", "분류코드"})
	assert.Len(t, result.Rows, 2)
}

func TestExecuteIdempotent(t *testing.T) {
	e := newTestEngine()
	cond := models.QueryConditions{
		Date:        "2023-05",
		TextFilters: []models.TextFilter{{Column: "조사구간명", Value: "한강"}},
	}

	first := e.Execute(sampleRows(), cond, sampleColumns())
	second := e.Execute(sampleRows(), cond, sampleColumns())
	assert.Equal(t, first, second)
}

func TestResolveTargetsDropsUnresolved(t *testing.T) {
	e := newTestEngine()
	cond := models.QueryConditions{TargetColumns: []string{"FAI", "T-P"}}

	result := e.Execute(sampleRows(), cond, sampleColumns())
	assert.Equal(t, []string{"FAI"}, result.TargetColumns)
}
