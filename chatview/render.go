package chatview

import (
	"fmt"
	"strings"

	"MindfulChatGo/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	assistantStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("111")).
			Padding(0, 1)
	indicatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
	crisisStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

const crisisText = `Crisis Support

If you're in immediate danger, please contact emergency services.

  Call 988 - Suicide & Crisis Lifeline
  Text HOME to 741741`

// RenderMessage draws one chat bubble wrapped to width.
func RenderMessage(msg models.Message, width int) string {
	bubbleWidth := width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	if msg.Role == models.RoleUser {
		bubble := userStyle.Width(bubbleWidth).Render(msg.Content)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}

	out := assistantStyle.Width(bubbleWidth).Render(msg.Content)
	if len(msg.StressIndicators) > 0 {
		out += "\n" + indicatorStyle.Render("noticed: "+strings.Join(msg.StressIndicators, ", "))
	}
	return out
}

func RenderNotification(n Notification) string {
	return noticeStyle.Render("💡 "+n.Title) + "\n" + dimStyle.Render("   "+n.Body)
}

func RenderCrisis(width int) string {
	boxWidth := width - 4
	if boxWidth > 60 {
		boxWidth = 60
	}
	if boxWidth < 30 {
		boxWidth = 30
	}
	return crisisStyle.Width(boxWidth).Render(crisisText)
}

// RenderStatus is the footer line under the transcript.
func RenderStatus(state State) string {
	switch state {
	case Sending, Awaiting:
		return dimStyle.Render("MindfulChat is typing...")
	default:
		return dimStyle.Render(fmt.Sprintf("[%s] type a message, /1-/4 for quick replies, /quit to exit", state))
	}
}
