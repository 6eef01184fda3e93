// Command chat is a terminal client for the scheduling API: it starts a
// session and relays lines from stdin as conversation turns.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

type reply struct {
	SessionID string `json:"session_id"`
	State     string `json:"state"`
	Message   string `json:"message"`
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "API base URL")
	flag.Parse()

	client := &http.Client{Timeout: 30 * time.Second}

	opening, err := post(client, *baseURL+"/chat/start", nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("session %s\n\n", opening.SessionID)
	fmt.Printf("assistant> %s\n", opening.Message)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		body, _ := json.Marshal(map[string]string{"message": line})
		resp, err := post(client, *baseURL+"/chat/"+opening.SessionID, body)
		if err != nil {
			fmt.Fprintf(os.Stderr, "turn failed: %v\n", err)
			continue
		}
		fmt.Printf("assistant> %s\n", resp.Message)
		if resp.State == "completed" {
			return
		}
	}
}

func post(client *http.Client, url string, body []byte) (reply, error) {
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return reply{}, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var r reply
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return reply{}, err
	}
	return r, nil
}
