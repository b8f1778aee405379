package feature

import (
	"strconv"

	"checkout/internal/pidl/models"
)

const styleProfileXboxNative = "xboxNative"

// xboxNativeStyleHints attaches gamepad style hints for native console surfaces.
type xboxNativeStyleHints struct{ partners partnerSet }

func (xboxNativeStyleHints) Name() Name { return XboxNativeStyleHints }
func (xboxNativeStyleHints) sealed()    {}

func (f xboxNativeStyleHints) Applicable(c Context) bool {
	return f.partners.contains(c.Partner())
}

func (xboxNativeStyleHints) Actions() []Action {
	return []Action{applyXboxNativeStyle}
}

func applyXboxNativeStyle(docs []*models.ResourceDocument, _ Context, d *Decisions) {
	eachDoc(docs, func(doc *models.ResourceDocument) {
		doc.SetClientSetting("styleProfile", styleProfileXboxNative)
		doc.Walk(func(h *models.DisplayHint) bool {
			switch h.Type {
			case models.HintButton, models.HintOption:
				h.AddStyleHint("gamepad-focusable")
			case models.HintProperty:
				h.AddStyleHint("native-input")
			}
			return true
		})
	})
	d.Set(XboxNativeStyleHints, "styleProfile", styleProfileXboxNative)
}

type dimensions struct{ width, height string }

// Challenge window sizes as defined by EMV 3-D Secure.
var challengeWindows = map[string]dimensions{
	"01": {"250", "400"},
	"02": {"390", "400"},
	"03": {"500", "600"},
	"04": {"600", "400"},
	"05": {"100%", "100%"},
}

const defaultChallengeWindow = "05"

// challengeWindowHints sizes the challenge iframe from the caller's window hint.
type challengeWindowHints struct{}

func (challengeWindowHints) Name() Name { return ChallengeWindowHints }
func (challengeWindowHints) sealed()    {}

func (challengeWindowHints) Applicable(c Context) bool {
	return c.ResourceType() == "challenge"
}

func (challengeWindowHints) Actions() []Action {
	return []Action{sizeChallengeFrame}
}

func sizeChallengeFrame(docs []*models.ResourceDocument, c Context, d *Decisions) {
	size := c.WindowSize()
	dims, ok := challengeWindows[size]
	if !ok {
		size = defaultChallengeWindow
		dims = challengeWindows[size]
	}
	eachDoc(docs, func(doc *models.ResourceDocument) {
		for _, h := range doc.Find(func(h *models.DisplayHint) bool { return h.Type == models.HintIFrame }) {
			h.SetTag(models.TagWidth, dims.width)
			h.SetTag(models.TagHeight, dims.height)
		}
	})
	d.Set(ChallengeWindowHints, "windowSize", size)
}

func itoa(n int) string { return strconv.Itoa(n) }
