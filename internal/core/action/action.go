// Package action defines the messages views hand to their dispatcher.
package action

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by Decode for a "type" tag it does not know.
var ErrUnknownAction = errors.New("unknown action")

// Action is a message a view hands to its dispatcher.
type Action interface {
	ActionType() Type
}

// UpdateQuery carries the raw text of the finder's query input.
type UpdateQuery struct {
	Type  Type   `json:"type"`
	Query string `json:"query"`
}

// NewUpdateQuery returns an UpdateQuery for query, verbatim.
func NewUpdateQuery(query string) UpdateQuery {
	return UpdateQuery{Type: TypeUpdateQuery, Query: query}
}

func (UpdateQuery) ActionType() Type { return TypeUpdateQuery }

// ToggleFileFinder opens the file finder, or closes it when already open.
type ToggleFileFinder struct {
	Type Type `json:"type"`
}

// NewToggleFileFinder returns a ToggleFileFinder action.
func NewToggleFileFinder() ToggleFileFinder {
	return ToggleFileFinder{Type: TypeToggleFileFinder}
}

func (ToggleFileFinder) ActionType() Type { return TypeToggleFileFinder }

// Decode parses a JSON object tagged by its "type" field.
func Decode(data []byte) (Action, error) {
	var envelope struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}

	switch {
	case envelope.Type == "":
		return nil, fmt.Errorf("decode action: missing type: %w", ErrUnknownAction)
	case !envelope.Type.IsValid():
		return nil, fmt.Errorf("%w %q", ErrUnknownAction, envelope.Type)
	}

	switch envelope.Type {
	case TypeUpdateQuery:
		var a UpdateQuery
		if err := json.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("decode %s: %w", envelope.Type, err)
		}
		return a, nil
	case TypeToggleFileFinder:
		return NewToggleFileFinder(), nil
	}

	return nil, fmt.Errorf("%w %q", ErrUnknownAction, envelope.Type)
}
