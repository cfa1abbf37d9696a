package slack

import (
	"context"
	"encoding/json"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/govbridge/tdabot/pkg/domain/interfaces"
	"github.com/govbridge/tdabot/pkg/domain/types"
)

const postTimeout = 15 * time.Second

type client struct {
	api *slack.Client
}

// NewClient creates a Slack client backed by a bot token. Extra options
// are passed through, mainly so tests can point the client at a local API.
func NewClient(token string, opts ...slack.Option) interfaces.SlackClient {
	return &client{
		api: slack.New(token, opts...),
	}
}

// PostBlocks posts a rendered Block Kit document to a channel. The content
// is the raw JSON produced by the template renderer; it is parsed here,
// just before delivery, so the renderer stays format-agnostic.
func (c *client) PostBlocks(ctx context.Context, channelID, content, fallback string) error {
	var blocks slack.Blocks
	if err := json.Unmarshal([]byte(content), &blocks); err != nil {
		return goerr.Wrap(err, "rendered template is not valid Block Kit JSON",
			goerr.V("channel", channelID))
	}

	ctx, cancel := context.WithTimeout(ctx, postTimeout)
	defer cancel()

	_, _, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionBlocks(blocks.BlockSet...),
		slack.MsgOptionText(fallback, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post message",
			goerr.T(types.ErrTagUpstream),
			goerr.V("channel", channelID))
	}

	return nil
}
