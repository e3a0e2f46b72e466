package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http/httptest"
	"testing"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/app"
	"github.com/iov-one/lockup/notify"
	"github.com/iov-one/lockup/store/leveldb"
	"github.com/iov-one/lockup/weavetest"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	*Server
	clock  *weavetest.Clock
	events *notify.Recorder
	admin  lockup.Address
	pool   lockup.Address
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := leveldb.OpenInMemory(64)
	require.NoError(t, err)

	ts := &testServer{
		clock:  weavetest.NewClock(0),
		events: &notify.Recorder{},
		admin:  weavetest.NewAddress(),
		pool:   weavetest.NewAddress(),
	}
	svc := app.NewService(db, HeaderAuth{}, ts.clock, ts.events)
	t.Cleanup(func() { svc.Close() })

	raw := fmt.Sprintf(`{
		"conf": {
			"admin": {"admin": %q},
			"vesting": {"pool": %q, "name": "Vesting Pool", "symbol": "VEST"}
		},
		"cash": [{"address": %q, "balance": "100000"}]
	}`, ts.admin, ts.pool, ts.pool)
	var opts lockup.Options
	require.NoError(t, json.Unmarshal([]byte(raw), &opts))
	gen := app.Genesis{ChainID: "lockup-http", AppOptions: opts}
	require.NoError(t, svc.InitGenesis(context.Background(), gen, app.Initializers()))

	ts.Server = New(svc, nil)
	return ts
}

// call sends a request signed by signer (when not nil) and decodes the
// JSON response into dst (when not nil).
func (ts *testServer) call(t *testing.T, method, path string, signer lockup.Address, body interface{}, dst interface{}) int {
	t.Helper()
	return ts.callWithHeader(t, method, path, signer, "", body, dst)
}

// callWithHeader is call with a raw signer header used when signer is nil.
func (ts *testServer) callWithHeader(t *testing.T, method, path string, signer lockup.Address, header string, body interface{}, dst interface{}) int {
	t.Helper()

	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if signer != nil {
		header = signer.String()
	}
	if header != "" {
		req.Header.Set(SignerHeader, header)
	}

	resp, err := ts.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	if dst != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, dst), string(raw))
	}
	return resp.StatusCode
}

func weeklyGrant(beneficiary lockup.Address, amount string) map[string]interface{} {
	return map[string]interface{}{
		"beneficiary":    beneficiary,
		"start":          0,
		"cliff_duration": 3600,
		"duration":       604800,
		"slice_period":   30,
		"revocable":      true,
		"amount":         amount,
	}
}
