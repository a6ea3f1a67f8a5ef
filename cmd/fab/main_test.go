package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/config"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`storage:
  driver: local
  data_dir: %s
database:
  driver: sqlite
  path: %s
log:
  level: error
`, dir, filepath.Join(dir, "audit.db"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path, dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := RootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCLIOrderLifecycle(t *testing.T) {
	cfgPath, dir := writeConfig(t)
	clients := writeFile(t, dir, "clients.csv", "Client_Code,Client_Name,Delivery_Address,Client_PIC,Client_Contact\nC001,Acme Pte Ltd,1 Jurong Rd,Tan,6123 4567\n")
	items := writeFile(t, dir, "items.csv", "item_code,item_description\nIT-1,Steel plate 3mm\n")

	_, err := runCLI(t, "", "--config", cfgPath, "master", "import", "client", clients)
	require.NoError(t, err)
	_, err = runCLI(t, "", "--config", cfgPath, "master", "import", "item", items)
	require.NoError(t, err)

	req := `{"client_code":"C001","client_po_list":"PO-9","required_date":"2026-12-01","local_export":"Local","items":[{"item_code":"IT-1","qty":4}]}`
	out, err := runCLI(t, req, "--config", cfgPath, "--operator", "clerk", "orders", "create")
	require.NoError(t, err)

	var created struct {
		JONumber string `json:"jo_number"`
		Status   string `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	yy := repository.YearTwo(time.Now())
	assert.Equal(t, "JO"+yy+"-001", created.JONumber)
	assert.Equal(t, "Preparing", created.Status)

	out, err = runCLI(t, "", "--config", cfgPath, "--operator", "clerk", "orders", "confirm", created.JONumber)
	require.NoError(t, err)
	assert.Contains(t, out, `"do_client_number": "DO`+yy+`-001"`)

	out, err = runCLI(t, "", "--config", cfgPath, "orders", "list")
	require.NoError(t, err)
	assert.Contains(t, out, created.JONumber)
	assert.Contains(t, out, "Delivering")

	out, err = runCLI(t, "", "--config", cfgPath, "delivery", "export", "DO"+yy+"-001", "-o", dir)
	require.NoError(t, err)
	assert.FileExists(t, strings.TrimSpace(out))

	_, err = runCLI(t, "", "--config", cfgPath, "orders", "complete", created.JONumber)
	require.NoError(t, err)
	_, err = runCLI(t, "", "--config", cfgPath, "orders", "cancel", created.JONumber)
	assert.Error(t, err)

	out, err = runCLI(t, "", "--config", cfgPath, "orders", "history", created.JONumber)
	require.NoError(t, err)
	var logs []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &logs))
	require.Len(t, logs, 3)
	events := map[string]interface{}{}
	for _, l := range logs {
		events[l["event"].(string)] = l["triggered_by"]
	}
	assert.Equal(t, "clerk", events["create"])
	assert.Equal(t, "clerk", events["confirm"])
	assert.Contains(t, events, "complete")
}

func TestCLIShowUnknownOrder(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	_, err := runCLI(t, "", "--config", cfgPath, "orders", "show", "JO26-404")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JO number not found: JO26-404")
}

func TestRouterHealth(t *testing.T) {
	cfgPath, _ := writeConfig(t)
	cfg, err := config.LoadFrom(cfgPath)
	require.NoError(t, err)

	a, err := newApp(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()
	router := newRouter(a)

	for _, path := range []string{"/health/live", "/health/ready", "/version", "/metrics"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clients/C001", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "fab dev (built unknown)\n", out)
}
