package main

import (
	"strconv"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/hashchain/ledger"
)

const shortHashLen = 16

func shortHash(h string) string {
	if len(h) <= shortHashLen {
		return h
	}
	return h[:shortHashLen] + "…"
}

// chainTable renders one row per block, genesis first.
func chainTable(blocks []ledger.Block) (string, error) {
	data := pterm.TableData{{"#", "Sequence", "Link", "Value", "Hash"}}
	for i, b := range blocks {
		link, ok := b.Link()
		if ok {
			link = shortHash(link)
		} else {
			link = pterm.Gray("none")
		}
		data = append(data, []string{
			strconv.Itoa(i),
			strconv.FormatUint(b.Sequence(), 10),
			link,
			strconv.Quote(b.Value()),
			shortHash(b.Hash()),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}

// verifyPanel summarizes the outcome of a verification.
func verifyPanel(length int, err error) string {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	if err != nil {
		return pbox.WithTitle(pterm.LightRed("|TAMPERED|")).WithTitleTopCenter().Sprint(err.Error())
	}
	return pbox.WithTitle(pterm.LightGreen("|VERIFIED|")).WithTitleTopCenter().Sprintf("%d blocks, every link matches", length)
}
