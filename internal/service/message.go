package service

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types a browser tab may send.
const (
	MsgNavigate      = "navigate"
	MsgLogin         = "login"
	MsgRegister      = "register"
	MsgLogout        = "logout"
	MsgSearch        = "search"
	MsgCategory      = "category"
	MsgLoadMore      = "load_more"
	MsgRefresh       = "refresh"
	MsgDeleteArticle = "delete_article"
	MsgSubmitArticle = "submit_article"
)

var ErrUnknownMessage = errors.New("unknown message type")

// Message is one inbound browser event.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type navigatePayload struct {
	Path string `json:"path"`
}

type searchPayload struct {
	Query string `json:"query"`
}

type categoryPayload struct {
	Name string `json:"name"`
}

type articleRefPayload struct {
	DocumentID string `json:"document_id"`
}

// Dispatch decodes msg and queues the matching action.
func (t *Tab) Dispatch(msg Message) error {
	switch msg.Type {
	case MsgNavigate:
		var p navigatePayload
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		t.Navigate(p.Path)
	case MsgLogin:
		var in LoginInput
		if err := decodePayload(msg, &in); err != nil {
			return err
		}
		t.Login(in)
	case MsgRegister:
		var in RegisterInput
		if err := decodePayload(msg, &in); err != nil {
			return err
		}
		t.Register(in)
	case MsgLogout:
		t.Logout()
	case MsgSearch:
		var p searchPayload
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		t.Search(p.Query)
	case MsgCategory:
		var p categoryPayload
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		t.SelectCategory(p.Name)
	case MsgLoadMore:
		t.LoadMore()
	case MsgRefresh:
		t.Refresh()
	case MsgDeleteArticle:
		var p articleRefPayload
		if err := decodePayload(msg, &p); err != nil {
			return err
		}
		if p.DocumentID == "" {
			return fmt.Errorf("%s: document_id is required", msg.Type)
		}
		t.DeleteArticle(p.DocumentID)
	case MsgSubmitArticle:
		var f ArticleForm
		if err := decodePayload(msg, &f); err != nil {
			return err
		}
		t.SubmitArticle(f)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func decodePayload(msg Message, v any) error {
	if len(msg.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	return nil
}
