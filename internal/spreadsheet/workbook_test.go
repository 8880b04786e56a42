package spreadsheet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/errors"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/spreadsheet/xlsxtest"
)

func TestParse_TwoSheets(t *testing.T) {
	data := xlsxtest.Build(t,
		xlsxtest.Sheet{Name: "投资组合", Rows: [][]interface{}{
			{"类别", "标的", "币种", "1119原始金额"},
			{"美股", " QQQ ", "USD", 1000},
		}},
		xlsxtest.Sheet{Name: "汇率参考", Rows: [][]interface{}{
			{"币种", "名称", "汇率"},
			{"USD", "美元", 7.1},
		}},
	)

	wb, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"类别", "标的", "币种", "1119原始金额"}, wb.HeaderRow)
	require.Len(t, wb.DataRows, 1)
	assert.Equal(t, []string{"美股", "QQQ", "USD", "1000"}, wb.DataRows[0])
	require.Len(t, wb.RatesRows, 2)
	assert.Equal(t, "7.1", wb.RatesRows[1][2])
}

func TestParse_SingleSheetHasNoRates(t *testing.T) {
	data := xlsxtest.Build(t, xlsxtest.Sheet{Name: "data", Rows: [][]interface{}{{"类别", "标的"}}})

	wb, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Nil(t, wb.RatesRows)
	assert.Empty(t, wb.DataRows)
}

func TestParse_EmptySheet(t *testing.T) {
	data := xlsxtest.Build(t, xlsxtest.Sheet{Name: "data"})

	wb, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, wb.HeaderRow)
	assert.Empty(t, ParseHeader(wb.HeaderRow).Columns)
}

func TestParse_CorruptInput(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("definitely not a zip archive")))
	require.Error(t, err)

	var parseErr *apperrors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
