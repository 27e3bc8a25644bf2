package report

import (
	"fmt"
	"strconv"
	"strings"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	participantsTemplate = "## ✅ Participants\n" +
		"Note: ranks Labeled \"???\" were less than the server-wide top 500 or unlisted at all.\n%s"
	coachesTemplate   = "## 🛂 Coaches\n%s"
	honorableTemplate = "## ⚠ **Honorable Mentions**\n" +
		"These were people who were non-participants but made it to top 500 and were in our FC!\n%s"
	winnerTemplate = "## Competition Winner\n" +
		"The winner for this week is: %[1]s!\n\n" +
		"For winning, %[1]s gets to choose from:\n" +
		"Any Mog Station Items equaling $10.00 USD (before tax; some Square Enix implemented limitations apply).\n" +
		"or\n" +
		"$10.00 Amazon Gift Card"
	contractsTemplate = "## 📜 Contracts this Week\n%s"
	creditsTemplate   = "Special thanks to %s for maintaining our Discord bot %s to help with rank info collection!"
	drawingTemplate   = "## Random Drawing\n" +
		"Winner of the Random Prize - Gil Drawing was awarded to %s! An extra 350,000 Gil was " +
		"sent to them! Remember: This prize is awarded to folks who didn't win the Mog " +
		"Station prizes this week but still scored in the top 500 as a participant! Please " +
		"make sure to sign up if you plan to participate to ensure you can be counted. See " +
		"the Honorable Mentions list to see if YOU made the top 500 this week."
)

// Credits names who requested the results and which bot collected them.
type Credits struct {
	RequestedBy professionalsdomain.DiscordID
	Bot         professionalsdomain.DiscordID
}

// Mention renders a Discord user mention.
func Mention(id professionalsdomain.DiscordID) string {
	return "<@" + strconv.FormatInt(int64(id), 10) + ">"
}

var englishPrinter = message.NewPrinter(language.English)

// Thousands formats n with comma separators.
func Thousands(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}

func italic(s string) string {
	return "*" + s + "*"
}

func rankLine(rank int, first, last string, seals int64) string {
	return fmt.Sprintf("Rank %d: %s %s - **%s**", rank, first, last, Thousands(seals))
}

func scoreLines(scores []professionalsdomain.PlayerScore) string {
	lines := make([]string, len(scores))
	for i, s := range scores {
		lines[i] = rankLine(s.Rank, s.FirstName, s.LastName, s.Seals)
	}
	return strings.Join(lines, "\n")
}

func participantsSection(players []professionalsdomain.PlayerScore) string {
	if len(players) == 0 {
		return fmt.Sprintf(participantsTemplate, italic("No participants this week."))
	}
	return fmt.Sprintf(participantsTemplate, scoreLines(players))
}

func coachesSection(coaches []professionalsdomain.PlayerScore) string {
	if len(coaches) == 0 {
		return fmt.Sprintf(coachesTemplate, italic("No coaches this week."))
	}
	return fmt.Sprintf(coachesTemplate, scoreLines(coaches))
}

func honorableSection(mentions []professionalsdomain.HonorableMention) string {
	if len(mentions) == 0 {
		return italic("No honorable mentions this week.")
	}
	lines := make([]string, len(mentions))
	for i, m := range mentions {
		lines[i] = rankLine(m.Rank, m.FirstName, m.LastName, m.Seals)
	}
	return fmt.Sprintf(honorableTemplate, strings.Join(lines, "\n"))
}

func contractsSection(contracts []professionalsdomain.ContractResult) string {
	if len(contracts) == 0 {
		return italic("No contracts this week.")
	}
	lines := make([]string, len(contracts))
	for i, c := range contracts {
		if c.Completed {
			lines[i] = fmt.Sprintf("%s %s: %s seals -- Payout: %s gil",
				c.FirstName, c.LastName, Thousands(c.Amount), Thousands(c.Payout))
			continue
		}
		lines[i] = fmt.Sprintf("~~%s %s: %s seals -- Contract Incomplete~~",
			c.FirstName, c.LastName, Thousands(c.Amount))
	}
	return fmt.Sprintf(contractsTemplate, strings.Join(lines, "\n"))
}

// FormatResults renders the weekly announcement. The winner and drawing
// sections are left out when nobody was eligible.
func FormatResults(results *professionalsdomain.CompetitionResults, credits Credits) string {
	parts := []string{
		"# Competition Results",
		participantsSection(results.Players()),
		coachesSection(results.Coaches()),
		honorableSection(results.HonorableMentions),
	}

	if results.WinReason != professionalsdomain.WinReasonNoEligiblePlayers && results.Winner != nil {
		parts = append(parts, fmt.Sprintf(winnerTemplate, Mention(results.Winner.DiscordID)))
	}

	parts = append(parts,
		contractsSection(results.ContractResults),
		fmt.Sprintf(creditsTemplate, Mention(credits.RequestedBy), Mention(credits.Bot)),
	)

	if results.DrawingReason != professionalsdomain.WinReasonNoEligiblePlayers && results.DrawingWinner != nil {
		parts = append(parts, fmt.Sprintf(drawingTemplate, results.DrawingWinner.FirstName+" "+results.DrawingWinner.LastName))
	}

	return strings.Join(parts, "\n")
}

// FormatValidationErrors renders field errors the way they are shown to the
// caller.
func FormatValidationErrors(errs professionalsdomain.ValidationErrors) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = fmt.Sprintf("**%s:** %s", e.Field, e.Message)
	}
	return "One or more fields were invalid:\n" + strings.Join(lines, "\n")
}
