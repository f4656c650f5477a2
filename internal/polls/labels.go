package polls

import (
	"fmt"
	"time"
)

// Labels holds every user-facing string of one locale.
type Labels struct {
	Question   string
	Options    [3]string
	Header     string
	Playing    string
	NotPlaying string
	FiftyFifty string
	Nobody     string
	NoData     string

	Help        string
	ChatInfo    string
	GroupInfo   string
	GroupBound  string
	PollCreated string
	PollFailed  string
	NoGroup     string

	// Weekdays as used after "on", indexed by time.Weekday.
	Weekdays [7]string
}

var Russian = Labels{
	Question:   "Вы идете играть в воскресенье?",
	Options:    [3]string{"Играю", "Не играю", "50/50"},
	Header:     "📊 <b>Итоги голосования (воскресная игра)</b>",
	Playing:    "✅ Играют",
	NotPlaying: "❌ Не играют",
	FiftyFifty: "🤷 50/50",
	Nobody:     "никто",
	NoData:     "Пока нет данных для статистики.",

	Help: "Привет! Я делаю опрос в %s и публикую статистику в %s (%s).\n\n" +
		"Команды:\n" +
		"/chatid — показать ID чата\n" +
		"/setgroup — сохранить этот чат как основной\n" +
		"/force_poll — создать опрос сейчас\n" +
		"/force_summary — показать статистику сейчас",
	ChatInfo:    "Chat ID: %d\nTitle: %s",
	GroupInfo:   "Основная группа: %d",
	GroupBound:  "Группа сохранена. GROUP_CHAT_ID = %d",
	PollCreated: "Опрос создан.",
	PollFailed:  "Не удалось создать опрос.",
	NoGroup:     "Группа не задана. Используйте /setgroup.",

	Weekdays: [7]string{"воскресенье", "понедельник", "вторник", "среду", "четверг", "пятницу", "субботу"},
}

var English = Labels{
	Question:   "Are you playing on Sunday?",
	Options:    [3]string{"Playing", "Not playing", "50/50"},
	Header:     "📊 <b>Poll results (Sunday game)</b>",
	Playing:    "✅ Playing",
	NotPlaying: "❌ Not playing",
	FiftyFifty: "🤷 50/50",
	Nobody:     "nobody",
	NoData:     "No data for the summary yet.",

	Help: "Hi! I post a poll on %s and the summary on %s (%s).\n\n" +
		"Commands:\n" +
		"/chatid — show this chat's ID\n" +
		"/setgroup — make this chat the main group\n" +
		"/force_poll — create a poll now\n" +
		"/force_summary — post the summary now",
	ChatInfo:    "Chat ID: %d\nTitle: %s",
	GroupInfo:   "Main group: %d",
	GroupBound:  "Group saved. GROUP_CHAT_ID = %d",
	PollCreated: "Poll created.",
	PollFailed:  "Could not create the poll.",
	NoGroup:     "No group is set. Use /setgroup.",

	Weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
}

func LabelsFor(locale string) (Labels, error) {
	switch locale {
	case "", "ru":
		return Russian, nil
	case "en":
		return English, nil
	default:
		return Labels{}, fmt.Errorf("unsupported locale %q", locale)
	}
}

// OptionTexts returns the poll answers in Option order.
func (l Labels) OptionTexts() []string {
	texts := make([]string, 0, len(Options))
	for _, o := range Options {
		texts = append(texts, l.Options[o])
	}
	return texts
}

// When formats a weekly slot, e.g. "четверг 08:00".
func (l Labels) When(day time.Weekday, hour, minute int) string {
	return fmt.Sprintf("%s %02d:%02d", l.Weekdays[day], hour, minute)
}
