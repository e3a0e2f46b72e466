package lockup

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/weavetest/assert"
)

func TestHex(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Hex
		wantErr *errors.Error
	}{
		"lower case":  {raw: `"0aff"`, want: Hex{0x0a, 0xff}},
		"upper case":  {raw: `"0AFF"`, want: Hex{0x0a, 0xff}},
		"0x prefix":   {raw: `"0x0aff"`, want: Hex{0x0a, 0xff}},
		"not hex":     {raw: `"zz"`, wantErr: errors.ErrInput},
		"not astring": {raw: `12`, wantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got Hex
			err := json.Unmarshal([]byte(tc.raw), &got)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, got)
			}
		})
	}

	raw, err := json.Marshal(Hex{0x0a, 0xff})
	assert.Nil(t, err)
	assert.Equal(t, `"0aff"`, string(raw))
}
