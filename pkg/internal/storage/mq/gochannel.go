package mq

import (
	"context"

	watermill "github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/grupovilla/gestprocesos/pkg/configs"
)

const defaultChannelBuffer = 64

func init() {
	RegisterFactory(configs.MQTypeGoChannel, goChannelFactory)
}

// goChannelFactory creates the in-process pub/sub. Publisher and subscriber
// are the same instance so events published before a subscriber attaches are
// dropped, which is acceptable for single-node deployments.
func goChannelFactory(
	ctx context.Context,
	cfg *configs.MQConfig,
	logger watermill.LoggerAdapter) (
	message.Publisher, message.Subscriber, error) {
	ch := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: defaultChannelBuffer,
	}, logger)

	return ch, ch, nil
}
