package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/spreadsheet/xlsxtest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := newApp()
	a.Writer = &out
	err := a.RunContext(context.Background(), append([]string{"portfolioctl"}, args...))
	return out.String(), err
}

func TestImportExportCommands(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "portfolio.db"))
	t.Setenv("FX_PROVIDER", "static")

	_, err := run(t, "migrate")
	require.NoError(t, err)

	workbook := filepath.Join(dir, "in.xlsx")
	require.NoError(t, os.WriteFile(workbook, xlsxtest.Build(t, xlsxtest.Sheet{Name: "data", Rows: [][]interface{}{
		{"类别", "标的", "币种", "1101原始金额"},
		{"美股", "QQQ", "USD", 1000},
	}}), 0o644))

	out, err := run(t, "import", "--file", workbook)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "导入成功"), out)

	out, err = run(t, "export", "--out", dir)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.FileExists(t, path)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "portfolio_export_"))

	out, err = run(t, "rates", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "USD\t7.1\t")
	assert.Contains(t, out, "\timport")
}

func TestImportCommand_BadFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "portfolio.db"))

	bad := filepath.Join(dir, "bad.xlsx")
	require.NoError(t, os.WriteFile(bad, []byte("not a workbook"), 0o644))

	_, err := run(t, "import", "--file", bad)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "导入失败: "))

	_, err = run(t, "import", "--file", filepath.Join(dir, "missing.xlsx"))
	assert.Error(t, err)
}
