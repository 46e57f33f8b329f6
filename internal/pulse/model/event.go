package model

import "time"

// Source identifies the external service an event was collected from.
type Source string

const (
	SourceGitHub          Source = "github"
	SourceSlack           Source = "slack"
	SourceCalendarPrimary Source = "calendar-primary"
	SourceCalendarTeam    Source = "calendar-team"
	SourceMailPersonal    Source = "mail-personal"
	SourceMailWork        Source = "mail-work"
	SourceStripe          Source = "stripe"
	SourceVercel          Source = "vercel"
)

// Sources lists every collector identity, in the order they are reported.
func Sources() []Source {
	return []Source{
		SourceGitHub,
		SourceSlack,
		SourceCalendarPrimary,
		SourceCalendarTeam,
		SourceMailPersonal,
		SourceMailWork,
		SourceStripe,
		SourceVercel,
	}
}

// Payload is the per-source event body. Each variant carries a fixed "type"
// discriminant so the serialized corpus stays self-describing.
type Payload interface {
	Kind() string
}

// PulseEvent is the canonical unit flowing through the pipeline. Events are
// created fresh on every collector invocation and never persisted.
type PulseEvent struct {
	Source    Source    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
	// Project is the classifier's label. Empty means unclassified.
	Project string  `json:"project,omitempty"`
	Data    Payload `json:"data"`
}

type Commit struct {
	Type    string `json:"type"`
	Repo    string `json:"repo"`
	Message string `json:"message"`
	Author  string `json:"author,omitempty"`
}

func (Commit) Kind() string { return "commit" }

func NewCommit(repo, message, author string) Commit {
	return Commit{Type: "commit", Repo: repo, Message: message, Author: author}
}

type RepoUpdate struct {
	Type   string `json:"type"`
	Repo   string `json:"repo"`
	Action string `json:"action"`
}

func (RepoUpdate) Kind() string { return "repo_update" }

func NewRepoUpdate(repo, action string) RepoUpdate {
	return RepoUpdate{Type: "repo_update", Repo: repo, Action: action}
}

type Message struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Text    string `json:"text"`
	User    string `json:"user,omitempty"`
}

func (Message) Kind() string { return "message" }

func NewMessage(channel, text, user string) Message {
	return Message{Type: "message", Channel: channel, Text: text, User: user}
}

type Email struct {
	Type    string `json:"type"`
	Subject string `json:"subject"`
	From    string `json:"from,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

func (Email) Kind() string { return "email" }

func NewEmail(subject, from, snippet string) Email {
	return Email{Type: "email", Subject: subject, From: from, Snippet: snippet}
}

type CalendarEntry struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Start     string `json:"start"`
	Attendees int    `json:"attendees,omitempty"`
}

func (CalendarEntry) Kind() string { return "calendar_entry" }

func NewCalendarEntry(title, start string, attendees int) CalendarEntry {
	return CalendarEntry{Type: "calendar_entry", Title: title, Start: start, Attendees: attendees}
}

type Transaction struct {
	Type        string `json:"type"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

func (Transaction) Kind() string { return "transaction" }

func NewTransaction(amount int64, currency, description, status string) Transaction {
	return Transaction{Type: "transaction", Amount: amount, Currency: currency, Description: description, Status: status}
}

type Payout struct {
	Type     string `json:"type"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status,omitempty"`
}

func (Payout) Kind() string { return "payout" }

func NewPayout(amount int64, currency, status string) Payout {
	return Payout{Type: "payout", Amount: amount, Currency: currency, Status: status}
}

type Deployment struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	State   string `json:"state"`
	URL     string `json:"url,omitempty"`
	Creator string `json:"creator,omitempty"`
}

func (Deployment) Kind() string { return "deployment" }

func NewDeployment(name, state, url, creator string) Deployment {
	return Deployment{Type: "deployment", Name: name, State: state, URL: url, Creator: creator}
}
