// Package display renders wire events as text for line-based clients. The
// graphical clients consume the JSON envelopes directly; only the telnet
// rendition goes through here.
package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"

	"github.com/khunny7/yunsol-land/internal/game"
)

const DefaultWidth = 80

// NameResolver turns a player id into a display name for message text.
type NameResolver func(playerID string) string

var templateFuncs = sprig.TxtFuncMap()

var snapshotTmpl = template.Must(template.New("snapshot").Funcs(templateFuncs).Parse(
	`{{ .Name }}
{{ .Description }}
Exits: {{ if .Exits }}{{ keys .Exits | sortAlpha | join ", " }}{{ else }}none{{ end }}{{ if .Players }}
Also here: {{ range $i, $p := .Players }}{{ if $i }}, {{ end }}{{ $p.Name }}{{ end }}{{ end }}{{ if .Mobs }}
You see: {{ range $i, $m := .Mobs }}{{ if $i }}, {{ end }}{{ $m.Name }}{{ end }}{{ end }}`))

var messageTmpl = template.Must(template.New("message").Funcs(templateFuncs).Parse(
	`{{ .From }} says, "{{ .Text }}"`))

// errorText maps protocol reason codes to player-facing lines.
var errorText = map[string]string{
	"not_logged_in":     "You are not logged in.",
	"unknown_command":   "Unknown command.",
	"missing_direction": "Go where?",
	"invalid_direction": "That is not a direction.",
	"no_exit":           "You cannot go that way.",
	"empty_message":     "Say what?",
}

// Renderer formats encoded event envelopes into wrapped text lines.
type Renderer struct {
	width   int
	resolve NameResolver
}

func NewRenderer(resolve NameResolver) *Renderer {
	return &Renderer{
		width:   DefaultWidth,
		resolve: resolve,
	}
}

// View is what the renderer knows about the reading player, used to phrase
// movement relative to them.
type View struct {
	PlayerID string
	RoomID   string
}

// Render formats one envelope for the given viewer. ok is false for events
// that have no text rendition (editor data, the viewer's own movement).
func (r *Renderer) Render(data []byte, view View) (string, bool) {
	ev, err := game.DecodeEvent(data)
	if err != nil {
		return "", false
	}

	switch ev.Name {
	case game.EventRoomMessage:
		var msg game.RoomMessage
		if json.Unmarshal(ev.Data, &msg) != nil {
			return "", false
		}
		return r.wrapTemplate(messageTmpl, &msg), true

	case game.EventPlayerMoved:
		var moved game.PlayerMoved
		if json.Unmarshal(ev.Data, &moved) != nil {
			return "", false
		}
		if moved.PlayerID == view.PlayerID {
			// The mover sees the destination snapshot instead.
			return "", false
		}
		name := r.resolve(moved.PlayerID)
		if moved.To == view.RoomID {
			return fmt.Sprintf("%s arrives.", name), true
		}
		return fmt.Sprintf("%s leaves.", name), true

	case game.EventRoomSnapshot:
		var snap game.RoomSnapshot
		if json.Unmarshal(ev.Data, &snap) != nil {
			return "", false
		}
		return r.wrapTemplate(snapshotTmpl, &snap), true

	case game.EventBootstrap:
		var boot game.Bootstrap
		if json.Unmarshal(ev.Data, &boot) != nil || boot.Room == nil {
			return "", false
		}
		return r.wrapTemplate(snapshotTmpl, boot.Room), true

	case game.EventError:
		var ep game.ErrorPayload
		if json.Unmarshal(ev.Data, &ep) != nil {
			return "", false
		}
		if text, ok := errorText[ep.Reason]; ok {
			return text, true
		}
		return fmt.Sprintf("Huh? (%s)", ep.Reason), true
	}

	return "", false
}

func (r *Renderer) wrapTemplate(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return ""
	}
	return wordwrap.String(strings.TrimRight(buf.String(), "\n"), r.width)
}
