// Package jtable adapts listings and tables to the ajax contract of the
// jTable grid widget.
package jtable

import (
	"encoding/json"
	"fmt"
)

const (
	ResultOK    = "OK"
	ResultError = "ERROR"
)

type envelopeKind int

const (
	kindOk envelopeKind = iota
	kindError
	kindCreated
)

// Envelope is the reply of a mutation: Ok, Error(message) or Created(record).
// The zero value is Ok.
type Envelope struct {
	kind    envelopeKind
	message string
	record  any
}

func Ok() Envelope {
	return Envelope{kind: kindOk}
}

func Error(message string) Envelope {
	return Envelope{kind: kindError, message: message}
}

func Created(record any) Envelope {
	return Envelope{kind: kindCreated, record: record}
}

func (e Envelope) IsOk() bool {
	return e.kind == kindOk
}

func (e Envelope) IsError() bool {
	return e.kind == kindError
}

func (e Envelope) IsCreated() bool {
	return e.kind == kindCreated
}

func (e Envelope) Message() string {
	return e.message
}

func (e Envelope) Record() any {
	return e.record
}

func (e Envelope) String() string {
	switch e.kind {
	case kindError:
		return fmt.Sprintf("Error(%s)", e.message)
	case kindCreated:
		return fmt.Sprintf("Created(%v)", e.record)
	default:
		return "Ok"
	}
}

type okReply struct {
	Result string `json:"Result"`
}

type errorReply struct {
	Result  string `json:"Result"`
	Message string `json:"Message"`
}

type createdReply struct {
	Result string `json:"Result"`
	Record any    `json:"Record"`
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	switch e.kind {
	case kindError:
		return json.Marshal(errorReply{Result: ResultError, Message: e.message})
	case kindCreated:
		return json.Marshal(createdReply{Result: ResultOK, Record: e.record})
	default:
		return json.Marshal(okReply{Result: ResultOK})
	}
}

// ListResult is the reply of a listing.
type ListResult[M any] struct {
	Result           string `json:"Result"`
	Records          []M    `json:"Records"`
	TotalRecordCount int    `json:"TotalRecordCount"`
}

type Option struct {
	DisplayText string `json:"DisplayText"`
	Value       any    `json:"Value"`
}

// OptionsResult is the reply of the options endpoint used by dropdowns.
type OptionsResult struct {
	Result  string   `json:"Result"`
	Options []Option `json:"Options"`
}
