package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client adapts the Bot API to the app's transport.
type Client struct {
	API *tgbotapi.BotAPI
}

func NewClient(token string, debug bool) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = debug
	return &Client{API: bot}, nil
}

func (c *Client) Username() string { return c.API.Self.UserName }

func (c *Client) SendPoll(_ context.Context, chatID int64, question string, options []string) (string, error) {
	pollCfg := tgbotapi.NewPoll(chatID, question, options...)
	pollCfg.IsAnonymous = false
	pollCfg.AllowsMultipleAnswers = false
	sent, err := c.API.Send(pollCfg)
	if err != nil {
		return "", err
	}
	if sent.Poll == nil {
		return "", errors.New("poll send returned no poll")
	}
	return sent.Poll.ID, nil
}

func (c *Client) SendMessage(_ context.Context, chatID int64, text string, html bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if html {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	_, err := c.API.Send(msg)
	return err
}
