package api

import (
	"time"

	"github.com/dekarrin/renfa/automaton"
	"github.com/dekarrin/renfa/internal/store"
	"github.com/dekarrin/renfa/regex"
)

// note that these are *not* the store models; those are distinct and closer to
// the DB format they are in. Rather these are the models that are received from
// and sent to the client.

type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Renfa  string `json:"renfa"`
	} `json:"version"`
}

type ParseRequest struct {
	Regex string `json:"regex"`
}

type CreateExpressionRequest struct {
	Name  string `json:"name"`
	Regex string `json:"regex"`
}

type TransitionModel struct {
	From int `json:"from"`

	// Input is the symbol consumed. It is empty for ε-transitions.
	Input   string `json:"input"`
	Epsilon bool   `json:"epsilon,omitempty"`
	To      int    `json:"to"`
}

type NFAModel struct {
	Start       int               `json:"start"`
	States      []int             `json:"states"`
	Finals      []int             `json:"finals"`
	Alphabet    []string          `json:"alphabet"`
	Transitions []TransitionModel `json:"transitions"`
}

type ExpressionModel struct {
	URI     string   `json:"uri"`
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Regex   string   `json:"regex"`
	Created string   `json:"created"`
	NFA     NFAModel `json:"nfa"`
}

// SyntaxErrorResponse is sent in place of a plain error response when an
// expression cannot be compiled.
type SyntaxErrorResponse struct {
	Error    string `json:"error"`
	Status   int    `json:"status"`
	Position int    `json:"position"`
	Expected string `json:"expected"`
	Found    string `json:"found"`
}

func newNFAModel(nfa automaton.NFA) NFAModel {
	m := NFAModel{
		Start:       nfa.MustStart(),
		States:      nfa.States().Elements(),
		Finals:      nfa.FinalStates().Elements(),
		Alphabet:    nfa.Alphabet().Elements(),
		Transitions: []TransitionModel{},
	}

	for _, t := range nfa.Transitions() {
		m.Transitions = append(m.Transitions, TransitionModel{
			From:    t.From,
			Input:   t.Input,
			Epsilon: t.IsEpsilon(),
			To:      t.To,
		})
	}

	return m
}

func newExpressionModel(e store.Expression) ExpressionModel {
	return ExpressionModel{
		URI:     PathPrefix + "/nfas/" + e.ID.String(),
		ID:      e.ID.String(),
		Name:    e.Name,
		Regex:   e.Regex,
		Created: e.Created.Format(time.RFC3339),
		NFA:     newNFAModel(e.NFA),
	}
}

func newSyntaxErrorResponse(status int, synErr regex.SyntaxError) SyntaxErrorResponse {
	return SyntaxErrorResponse{
		Error:    synErr.Error(),
		Status:   status,
		Position: synErr.Position(),
		Expected: synErr.Expected(),
		Found:    synErr.FoundDescription(),
	}
}
