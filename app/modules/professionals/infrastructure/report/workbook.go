package report

import (
	"bytes"
	"fmt"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetPlayers   = "Players"
	SheetContracts = "Contracts"
	SheetMentions  = "Honorable Mentions"
)

// ExportWorkbook writes the results as an XLSX workbook with one sheet per
// section.
func ExportWorkbook(results *professionalsdomain.CompetitionResults) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlayers); err != nil {
		return nil, fmt.Errorf("failed to name players sheet: %w", err)
	}
	for _, name := range []string{SheetContracts, SheetMentions} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to add sheet %q: %w", name, err)
		}
	}

	players := [][]interface{}{{"Discord ID", "First Name", "Last Name", "Rank", "Seals", "Coach", "Winner", "Drawing Winner"}}
	for _, p := range results.PlayerScores {
		players = append(players, []interface{}{
			fmt.Sprint(int64(p.DiscordID)),
			p.FirstName,
			p.LastName,
			p.Rank,
			p.Seals,
			p.IsCoach,
			results.Winner != nil && results.Winner.DiscordID == p.DiscordID,
			results.DrawingWinner != nil && results.DrawingWinner.DiscordID == p.DiscordID,
		})
	}

	contracts := [][]interface{}{{"Discord ID", "First Name", "Last Name", "Amount", "Completed", "Payout"}}
	for _, c := range results.ContractResults {
		contracts = append(contracts, []interface{}{
			fmt.Sprint(int64(c.DiscordID)),
			c.FirstName,
			c.LastName,
			c.Amount,
			c.Completed,
			c.Payout,
		})
	}

	mentions := [][]interface{}{{"First Name", "Last Name", "Rank", "Seals"}}
	for _, m := range results.HonorableMentions {
		mentions = append(mentions, []interface{}{m.FirstName, m.LastName, m.Rank, m.Seals})
	}

	for sheet, rows := range map[string][][]interface{}{
		SheetPlayers:   players,
		SheetContracts: contracts,
		SheetMentions:  mentions,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
