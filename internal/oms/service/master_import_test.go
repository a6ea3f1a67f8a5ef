package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func stringsReader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestImportMasterCSVGBK(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	csvText := "Item_Code,Item_Description\nIT-9,不锈钢板 2mm\n,\nIT-10,铝型材\n"
	encoded, err := simplifiedchinese.GBK.NewEncoder().String(csvText)
	require.NoError(t, err)

	res, err := f.svc.Import.ImportMasterCSV(ctx, "item", bytes.NewReader([]byte(encoded)), "gbk")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, []string{"item_code", "item_description"}, res.Columns)

	assert.Equal(t, "不锈钢板 2mm", f.svc.Master.ItemDescription(ctx, "IT-9"))
	assert.Equal(t, "铝型材", f.svc.Master.ItemDescription(ctx, "IT-10"))
	// 整表覆盖
	assert.Equal(t, "", f.svc.Master.ItemDescription(ctx, "IT-1"))
}

func TestImportMasterCSVUTF8BOMAndWindows1252(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Import.ImportMasterCSV(ctx, "client", stringsReader("\ufeffCode,Client_Name\nC100,Zoë Pte Ltd\n"), "utf-8")
	require.NoError(t, err)
	client, err := f.svc.Master.ResolveClient(ctx, "C100")
	require.NoError(t, err)
	assert.Equal(t, "Zoë Pte Ltd", client.ClientName)

	latin, err := charmap.Windows1252.NewEncoder().String("client_code,client_name\nC200,Café Supplies\n")
	require.NoError(t, err)
	_, err = f.svc.Import.ImportMasterCSV(ctx, "client", stringsReader(latin), "windows-1252")
	require.NoError(t, err)
	client, err = f.svc.Master.ResolveClient(ctx, "C200")
	require.NoError(t, err)
	assert.Equal(t, "Café Supplies", client.ClientName)
}

func TestImportMasterCSVRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Import.ImportMasterCSV(ctx, "client", stringsReader(""), "utf-8")
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "CSV file is empty")

	_, err = f.svc.Import.ImportMasterCSV(ctx, "supplier", stringsReader("code\nX\n"), "utf-8")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Import.ImportMasterCSV(ctx, "item", stringsReader("name\nX\n"), "utf-8")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.Import.ImportMasterCSV(ctx, "item", stringsReader("code\nX\n"), "ebcdic")
	assert.ErrorIs(t, err, ErrValidation)

	// 失败的导入不改动已有主数据
	assert.Equal(t, "Steel plate 3mm", f.svc.Master.ItemDescription(ctx, "IT-1"))
}

func TestResolveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Master.ResolveItem(ctx, "IT-2")
	require.NoError(t, err)
	assert.Equal(t, "Aluminium bar", item.ItemDescription)

	_, err = f.svc.Master.ResolveItem(ctx, "IT-404")
	assert.ErrorIs(t, err, ErrNotFound)
}
