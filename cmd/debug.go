package cmd

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"

	"github.com/bugVanisher/igsmenu/media/igs/model"
)

var debugJSON = jsoniter.ConfigCompatibleWithStandardLibrary

type pageSummary struct {
	ID      uint8 `json:"id"`
	Buttons int   `json:"buttons"`
}

type menuSummary struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Palettes int           `json:"palettes"`
	Pictures int           `json:"pictures"`
	Pages    []pageSummary `json:"pages"`
}

// logMenuSummary emits a structured summary of a decoded menu at debug
// level, so runs with --log-level DEBUG can be inspected without a hex dump
// of the source file.
func logMenuSummary(path string, menu *model.Menu) {
	summary := menuSummary{
		Width:    menu.Width,
		Height:   menu.Height,
		Palettes: len(menu.Palettes),
		Pictures: len(menu.Pictures),
	}
	for _, page := range menu.Pages {
		n := 0
		for _, bog := range page.BOGs {
			n += len(bog.Buttons)
		}
		summary.Pages = append(summary.Pages, pageSummary{ID: page.ID, Buttons: n})
	}

	b, err := debugJSON.Marshal(summary)
	if err != nil {
		log.Debug().Str("file", path).Err(err).Msg("failed to marshal menu summary")
		return
	}
	log.Debug().Str("file", path).RawJSON("menu", b).Msg("decoded menu")
}
