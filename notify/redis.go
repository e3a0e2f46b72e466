package notify

import (
	"encoding/json"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultStream is the name of the redis stream events are appended to
// when none is configured.
const DefaultStream = "lockup:events"

// RedisSink appends events to a redis stream. Each stream entry holds the
// event name and its JSON encoded payload.
type RedisSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

var _ lockup.EventSink = (*RedisSink)(nil)

// NewRedisSink returns a sink writing to given stream. A zero maxLen keeps
// the stream unbounded, otherwise it is approximately trimmed to that
// length.
func NewRedisSink(client redis.Cmdable, stream string, maxLen int64) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisSink{client: client, stream: stream, maxLen: maxLen}
}

// DialRedis connects to the redis server described by url, ie.
// redis://localhost:6379/0
func DialRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return redis.NewClient(opts), nil
}

// Publish appends all events in one round trip.
func (s *RedisSink) Publish(ctx lockup.Context, events []lockup.Event) error {
	pipe := s.client.TxPipeline()
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return errors.Wrapf(errors.ErrType, "encode %s: %s", e.EventName(), err)
		}
		pipe.XAdd(ctx, &redis.XAddArgs{
			Stream: s.stream,
			MaxLen: s.maxLen,
			Approx: s.maxLen > 0,
			Values: map[string]interface{}{
				"name":    e.EventName(),
				"payload": string(payload),
			},
		})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
