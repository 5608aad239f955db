package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// xmlNode is a generic element. A logFile is decoded into a tree of these so
// its scenario and events can be nested at any depth.
type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n *xmlNode) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// find returns the first descendant with the given name, in document order.
func (n *xmlNode) find(name string) *xmlNode {
	for i := range n.Children {
		c := &n.Children[i]
		if c.XMLName.Local == name {
			return c
		}
		if found := c.find(name); found != nil {
			return found
		}
	}
	return nil
}

// ParseXML decodes the XML report written by the log-file shim. logFile
// elements are picked up at any depth. Players get IDs "p:1", "p:2", ... in
// the order they first appear in a diceEvent.
func ParseXML(data []byte) (*model.Report, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	r := &model.Report{}
	playerIDs := make(map[string]string)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml report: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "logFile" {
			continue
		}
		var xlf xmlNode
		if err := dec.DecodeElement(&xlf, &se); err != nil {
			return nil, fmt.Errorf("parse xml log file: %w", err)
		}
		lf, err := convertLogFile(xlf, len(r.LogFiles), r, playerIDs)
		if err != nil {
			return nil, err
		}
		r.LogFiles = append(r.LogFiles, lf)
	}
	return r, nil
}

func convertLogFile(xlf xmlNode, index int, r *model.Report, playerIDs map[string]string) (model.LogSource, error) {
	filename, _ := xlf.attr("filename")
	lf := model.LogSource{Filename: filename}
	if sc := xlf.find("scenario"); sc != nil {
		id, _ := sc.attr("id")
		lf.Scenario = model.Scenario{
			ScenarioName: strings.TrimSpace(sc.Text),
			ScenarioID:   id,
		}
	}

	events := xlf.find("events")
	if events == nil {
		return lf, nil
	}
	for j := range events.Children {
		xe := &events.Children[j]
		switch xe.XMLName.Local {
		case "diceEvent":
			player, _ := xe.attr("player")
			id, ok := playerIDs[player]
			if !ok {
				id = fmt.Sprintf("p:%d", len(playerIDs)+1)
				playerIDs[player] = id
				r.Players.Set(id, player)
			}
			v, err := parseDice(xe.Text)
			if err != nil {
				return lf, fmt.Errorf("log file %d, event %d: %w", index, j, err)
			}
			rollType, _ := xe.attr("rollType")
			lf.Events = append(lf.Events, model.RollEvent(id, rollType, v))
		case "turnTrackEvent":
			side, _ := xe.attr("side")
			turnNo, _ := xe.attr("turnNo")
			phase, _ := xe.attr("phase")
			lf.Events = append(lf.Events, model.TurnTrackEvent(side, turnNo, phase))
		case "customLabelEvent":
			lf.Events = append(lf.Events, model.CustomLabelEvent(xe.Text))
		default:
			log.Warn().Str("element", xe.XMLName.Local).Int("logFile", index).Msg("unknown analysis event")
		}
	}
	return lf, nil
}

// parseDice parses "3" or "3,4".
func parseDice(s string) (model.RollValue, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	dice := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return model.RollValue{}, fmt.Errorf("%w: %q", model.ErrInvalidRoll, s)
		}
		dice = append(dice, d)
	}
	return model.NewRollValue(dice...)
}
