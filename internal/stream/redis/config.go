package redis

type StreamConfig struct {
	RedisAddr     string
	RedisPassword string
	Stream        string
	Group         string
	ConsumerName  string
}

func NewStreamConfig(redisAddr string, redisPassword string, stream string, group string, consumerName string) *StreamConfig {
	return &StreamConfig{
		RedisAddr:     redisAddr,
		RedisPassword: redisPassword,
		Stream:        stream,
		Group:         group,
		ConsumerName:  consumerName,
	}
}
