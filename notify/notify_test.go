package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/weavetest"
	"github.com/iov-one/lockup/weavetest/assert"
	"github.com/iov-one/lockup/x/vesting"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

func TestRedisSink(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	beneficiary := weavetest.NewAddress()
	created := vesting.ScheduleCreated{
		ID:          lockup.Hex{0x01, 0x02},
		Beneficiary: beneficiary,
		AmountTotal: coin.NewAmount(10000),
	}
	paused := vesting.PausedChanged{Paused: true}

	ctx := context.Background()
	sink := NewRedisSink(client, "", 0)
	require.NoError(t, sink.Publish(ctx, []lockup.Event{created, paused}))

	entries, err := client.XRange(ctx, DefaultStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.Equal(t, "vesting.schedule_created", entries[0].Values["name"])
	require.Equal(t, "vesting.paused_changed", entries[1].Values["name"])

	var got vesting.ScheduleCreated
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["payload"].(string)), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, true, beneficiary.Equals(got.Beneficiary))
	assert.Equal(t, true, created.AmountTotal.Equals(got.AmountTotal))
}

func TestRedisSinkTrimsStream(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()
	sink := NewRedisSink(client, "trimmed", 3)
	for i := 0; i < 10; i++ {
		require.NoError(t, sink.Publish(ctx, []lockup.Event{vesting.PausedChanged{Paused: i%2 == 0}}))
	}
	n, err := client.XLen(ctx, "trimmed").Result()
	require.NoError(t, err)
	if n < 3 || n >= 10 {
		t.Fatalf("stream not trimmed: %d entries", n)
	}
}

func TestRedisSinkUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	sink := NewRedisSink(client, "", 0)
	err = sink.Publish(context.Background(), []lockup.Event{vesting.PausedChanged{}})
	require.Error(t, err)
}

func TestDialRedis(t *testing.T) {
	_, err := DialRedis("not a url")
	require.Error(t, err)

	client, err := DialRedis("redis://localhost:6379/2")
	require.NoError(t, err)
	require.Equal(t, 2, client.Options().DB)
	require.NoError(t, client.Close())
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(log.NewTMLogger(&buf))
	err := sink.Publish(context.Background(), []lockup.Event{
		vesting.PausedChanged{Paused: true},
		vesting.Withdrawn{To: weavetest.NewAddress(), Amount: coin.NewAmount(7)},
	})
	assert.Nil(t, err)

	out := buf.String()
	for _, name := range []string{"vesting.paused_changed", "vesting.withdrawn"} {
		if !strings.Contains(out, name) {
			t.Errorf("%q not logged: %s", name, out)
		}
	}
}

func TestLogSinkUsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := lockup.WithLogger(context.Background(), log.NewTMLogger(&buf))
	assert.Nil(t, NewLogSink(nil).Publish(ctx, []lockup.Event{vesting.PausedChanged{}}))
	if !strings.Contains(buf.String(), "vesting.paused_changed") {
		t.Fatalf("event not logged: %s", buf.String())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	assert.Nil(t, r.Publish(ctx, []lockup.Event{vesting.PausedChanged{Paused: true}}))
	assert.Nil(t, r.Publish(ctx, []lockup.Event{vesting.PausedChanged{}}))
	assert.Equal(t, []string{"vesting.paused_changed", "vesting.paused_changed"}, r.Names())
	assert.Equal(t, vesting.PausedChanged{Paused: true}, r.Events()[0])

	r.Reset()
	assert.Equal(t, 0, len(r.Events()))
}
