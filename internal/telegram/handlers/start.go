package handlers

import (
	"context"

	tele "gopkg.in/telebot.v4"

	"github.com/uma-mfg/societybot/internal/membership"
	"github.com/uma-mfg/societybot/internal/telegram/helpers"
)

// ChannelChecker verifies channel membership through the Bot API.
type ChannelChecker struct {
	bot       *tele.Bot
	channelID int64
}

// NewChannelChecker builds the live membership checker.
func NewChannelChecker(bot *tele.Bot, channelID int64) *ChannelChecker {
	return &ChannelChecker{bot: bot, channelID: channelID}
}

// IsMember reports whether the user belongs to the society channel.
func (cc *ChannelChecker) IsMember(_ context.Context, userID int64) (bool, error) {
	member, err := cc.bot.ChatMemberOf(&tele.Chat{ID: cc.channelID}, &tele.User{ID: userID})
	if err != nil {
		return false, err
	}
	switch member.Role {
	case tele.Creator, tele.Administrator, tele.Member:
		return true, nil
	}
	return false, nil
}

// Start handles /start: a welcome message with the main keyboard, plus
// a join hint when the user is not a channel member yet.
func (h *Handlers) Start(c tele.Context) error {
	verdict := h.gate.Check(h.ctx(c), c.Sender().ID)
	isMember := verdict == membership.Allowed
	return helpers.SendMDV2(c, welcomeText(h.cfg, isMember), mainMenuMarkup())
}

// CheckMembership handles the verify button under the join prompt.
func (h *Handlers) CheckMembership(c tele.Context) error {
	switch h.gate.Check(h.ctx(c), c.Sender().ID) {
	case membership.Allowed:
		return helpers.EditOrSendMDV2(c, textMembershipVerified)
	case membership.RateLimited:
		return helpers.EditOrSendMDV2(c, textCheckRateLimited)
	default:
		return helpers.EditOrSendMDV2(c, textStillNotMember, membershipMarkup(h.cfg.Channel.URL))
	}
}

// requireMembership gates a feature: it runs next only for verified
// members and otherwise replies with the join prompt or the rate-limit
// notice.
func (h *Handlers) requireMembership(c tele.Context, featureName string, next func() error) error {
	switch h.gate.Check(h.ctx(c), c.Sender().ID) {
	case membership.Allowed:
		return next()
	case membership.RateLimited:
		return helpers.SendMDV2(c, textCheckRateLimited)
	default:
		return helpers.SendMDV2(c, membershipRequiredText(featureName), membershipMarkup(h.cfg.Channel.URL))
	}
}
