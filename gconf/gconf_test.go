package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/store"
	"github.com/iov-one/lockup/weavetest/assert"
)

type myconf struct {
	Name  string `json:"name"`
	Limit int64  `json:"limit"`
}

func (c *myconf) Validate() error {
	if c.Name == "" {
		return errors.Wrap(errors.ErrEmpty, "name")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var got myconf
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &got))

	assert.IsErr(t, errors.ErrEmpty, Save(db, "mypkg", &myconf{}))

	assert.Nil(t, Save(db, "mypkg", &myconf{Name: "x", Limit: 7}))
	assert.Nil(t, Load(db, "mypkg", &got))
	assert.Equal(t, myconf{Name: "x", Limit: 7}, got)

	raw, err := db.Get([]byte("_c:mypkg"))
	assert.Nil(t, err)
	if raw == nil {
		t.Fatal("configuration stored under unexpected key")
	}
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
		want    myconf
	}{
		"configured": {
			genesis: `{"conf": {"mypkg": {"name": "a", "limit": 3}}}`,
			want:    myconf{Name: "a", Limit: 3},
		},
		"missing package": {
			genesis: `{"conf": {"other": {"name": "a"}}}`,
			wantErr: errors.ErrNotFound,
		},
		"invalid configuration": {
			genesis: `{"conf": {"mypkg": {"limit": 3}}}`,
			wantErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts lockup.Options
			assert.Nil(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var conf myconf
			err := InitConfig(db, opts, "mypkg", &conf)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			var got myconf
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.want, got)
		})
	}
}
