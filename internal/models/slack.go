package models

// SlackAttachment is a single legacy message attachment rendered by Slack.
type SlackAttachment struct {
	Color     string `json:"color"`
	Title     string `json:"title"`
	TitleLink string `json:"title_link,omitempty"`
	Text      string `json:"text"`
	Ts        int64  `json:"ts,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

// SlackMessage is the JSON body posted to an incoming webhook.
type SlackMessage struct {
	Mrkdwn      bool              `json:"mrkdwn"`
	Attachments []SlackAttachment `json:"attachments"`
}

// DeliveryResult is returned to the caller after a successful webhook delivery.
type DeliveryResult struct {
	StatusCode int    `json:"status,omitempty"`
	Message    string `json:"message"`
}
