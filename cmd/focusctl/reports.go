package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

func runLogEvent(apiURL, userID, toolID, title string, minutes int, minutesSet bool, out io.Writer) error {
	payload := map[string]interface{}{"userId": userID}
	if toolID != "" {
		payload["toolId"] = toolID
	}
	if title != "" {
		payload["title"] = title
	}
	if minutesSet {
		payload["minutes"] = minutes
	}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(apiURL+"/api/activity-events", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	return copyResponse(resp, out, http.StatusCreated)
}

func runWeeklyReport(apiURL, userID, weekStart string, generate bool, out io.Writer) error {
	url := fmt.Sprintf("%s/api/users/%s/reports/%s", apiURL, userID, weekStart)
	var resp *http.Response
	var err error
	if generate {
		resp, err = http.Post(url, "application/json", nil)
	} else {
		resp, err = http.Get(url)
	}
	if err != nil {
		return err
	}
	return copyResponse(resp, out, http.StatusOK)
}

func runPublishWeek(apiURL, userID, weekStart string, out io.Writer) error {
	url := fmt.Sprintf("%s/api/users/%s/calendar/week/%s/publish", apiURL, userID, weekStart)
	resp, err := http.Post(url, "application/json", nil)
	if err != nil {
		return err
	}
	return copyResponse(resp, out, http.StatusOK)
}

func runTeamReport(apiURL, teamID, weekStart string, generate bool, out io.Writer) error {
	url := fmt.Sprintf("%s/api/teams/%s/reports/%s", apiURL, teamID, weekStart)
	var resp *http.Response
	var err error
	if generate {
		resp, err = http.Post(url, "application/json", nil)
	} else {
		resp, err = http.Get(url)
	}
	if err != nil {
		return err
	}
	return copyResponse(resp, out, http.StatusOK)
}

func copyResponse(resp *http.Response, out io.Writer, want int) error {
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}
	_, err := io.Copy(out, resp.Body)
	return err
}
