package client

import "github.com/rdmitr/agentchat/internal/chat"

type inferenceRequest struct {
	AgentID  string         `json:"agentId"`
	TaskID   string         `json:"taskId"`
	Messages []chat.Message `json:"messages"`
}

type inferenceResponse struct {
	Reply string `json:"reply"`
}
