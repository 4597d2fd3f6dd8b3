package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap/zaptest"

	"mspbackup/backend/services/storage-report/internal/clients"
	"mspbackup/backend/services/storage-report/internal/config"
	"mspbackup/backend/services/storage-report/internal/csvreport"
	"mspbackup/backend/services/storage-report/internal/mailer"
	"mspbackup/backend/services/storage-report/internal/models"
)

// backupAPI serves a fixed hierarchy: one customer with two devices on two
// storages and one customer without accounts. Payloads are nested under
// result.result as the real API does.
func backupAPI(t *testing.T, password string) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	n := 0

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		var req struct {
			Method string          `json:"method"`
			Params json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		n++
		resp := map[string]any{"jsonrpc": "2.0", "id": req.Method, "visa": "v" + string(rune('a'+n))}
		switch req.Method {
		case "Login":
			var p map[string]string
			_ = json.Unmarshal(req.Params, &p)
			if p["password"] != password {
				resp["error"] = clients.RPCError{Code: 1, Message: "bad credentials"}
			} else {
				resp["result"] = map[string]any{"PartnerId": 1001}
			}
		case "EnumeratePartners":
			resp["result"] = []models.Partner{{ID: 7, Name: "Acme"}, {ID: 8, Name: "Empty"}}
		case "EnumerateStorages":
			resp["result"] = []models.Storage{{ID: 1, Name: "pool-1"}, {ID: 2, Name: "pool-2"}}
		case "EnumerateAccountStatistics":
			var p struct {
				Query struct {
					PartnerID int64 `json:"PartnerId"`
				} `json:"query"`
			}
			_ = json.Unmarshal(req.Params, &p)
			if p.Query.PartnerID != 7 {
				resp["result"] = nil
				break
			}
			resp["result"] = json.RawMessage(`[{"AccountId":11,"Settings":[{"I1":"pc-01"}]},{"AccountId":12,"Settings":[{"I1":"srv-02"}]}]`)
		case "GetAccountInfoById":
			var p map[string]int64
			_ = json.Unmarshal(req.Params, &p)
			resp["result"] = models.Account{ID: p["accountId"], StorageID: p["accountId"] - 10}
		default:
			resp["error"] = clients.RPCError{Code: -32601, Message: "method not found"}
		}
		if result, ok := resp["result"]; ok {
			resp["result"] = map[string]any{"result": result}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, url string) *config.Config {
	cfg := config.Default()
	cfg.API.URL = url
	cfg.API.PartnerName = "acme"
	cfg.API.Username = "reporter"
	cfg.API.Password = "secret"
	cfg.Report.CSVFile = filepath.Join(t.TempDir(), "storage_report.csv")
	cfg.Mail.Enabled = false
	return cfg
}

type recordingSender struct {
	sent []*mail.Msg
}

func (r *recordingSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	r.sent = append(r.sent, messages...)
	return nil
}

func TestRunWritesReport(t *testing.T) {
	srv := backupAPI(t, "secret")
	cfg := testConfig(t, srv.URL)

	a, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, a.Run(context.Background()))

	rows, err := csvreport.ReadFile(cfg.Report.CSVFile)
	require.NoError(t, err)
	assert.Equal(t, []models.ReportRow{
		{CustomerName: "Acme", DeviceName: "pc-01", StorageName: "pool-1"},
		{CustomerName: "Acme", DeviceName: "srv-02", StorageName: "pool-2"},
	}, rows)
}

func TestRunMailsReport(t *testing.T) {
	srv := backupAPI(t, "secret")
	cfg := testConfig(t, srv.URL)
	cfg.Mail.Destination = "ops@example.com"

	a, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	sender := &recordingSender{}
	a.mailer = mailer.New(sender, mailer.Options{From: "reports@example.com", To: cfg.Mail.Destination}, zaptest.NewLogger(t))

	require.NoError(t, a.Run(context.Background()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"MSP Backup Storage Report acme"}, sender.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestRunFailsOnBadCredentials(t *testing.T) {
	srv := backupAPI(t, "other")
	cfg := testConfig(t, srv.URL)

	a, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	err = a.Run(context.Background())
	assert.ErrorIs(t, err, clients.ErrAuthentication)
	assert.NoFileExists(t, cfg.Report.CSVFile)
}

func TestNewRejectsBadTransportOptions(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.API.ProxyURL = "://bad"
	_, err := New(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)

	cfg = testConfig(t, "http://127.0.0.1:0")
	cfg.Mail.Enabled = true
	cfg.Mail.Server = "mail.example.com"
	cfg.Mail.TLS = "sometimes"
	_, err = New(cfg, zaptest.NewLogger(t))
	assert.Error(t, err)
}
