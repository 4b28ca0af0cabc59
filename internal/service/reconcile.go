package service

import (
	"slices"

	"flow-chat/frontend/internal/model"
)

// reconcile merges the server's message list into the local one after a
// conversation is created. Local order and local ids are kept. A server
// message is matched to a local one by id first. Remaining pending local
// messages are then paired in order with the remaining server messages of
// the same role. Matched local messages become sent and take the server's
// id and content. Failed and error messages are never matched: they were
// not delivered. Server messages left unmatched are appended. Local
// messages are never dropped.
func reconcile(local, server []model.Message) []model.Message {
	out := slices.Clone(local)
	usedLocal := make([]bool, len(out))
	usedServer := make([]bool, len(server))

	byID := make(map[string]int, len(server))
	for j, m := range server {
		if m.ID != "" {
			byID[m.ID] = j
		}
	}
	for i := range out {
		if !deliverable(out[i]) {
			continue
		}
		for _, key := range []string{out[i].ServerID, out[i].ID} {
			if key == "" {
				continue
			}
			if j, ok := byID[key]; ok && !usedServer[j] {
				out[i] = confirm(out[i], server[j])
				usedLocal[i], usedServer[j] = true, true
				break
			}
		}
	}

	next := 0
	for i := range out {
		if usedLocal[i] || out[i].Status != model.StatusPending {
			continue
		}
		for j := next; j < len(server); j++ {
			if usedServer[j] || server[j].Role != out[i].Role {
				continue
			}
			out[i] = confirm(out[i], server[j])
			usedLocal[i], usedServer[j] = true, true
			next = j + 1
			break
		}
	}

	for j, m := range server {
		if !usedServer[j] {
			out = append(out, m)
		}
	}
	return out
}

func deliverable(m model.Message) bool {
	return m.Status != model.StatusFailed && m.Status != model.StatusError
}

func confirm(local, server model.Message) model.Message {
	local.ServerID = server.ID
	local.Status = model.StatusSent
	if server.Content != "" {
		local.Content = server.Content
	}
	return local
}

// mergeKnowledge returns server items followed by local items the server
// did not report.
func mergeKnowledge(local, server []model.KnowledgeItem) []model.KnowledgeItem {
	out := slices.Clone(server)
	if out == nil {
		out = []model.KnowledgeItem{}
	}
	for _, k := range local {
		if !slices.ContainsFunc(out, func(s model.KnowledgeItem) bool { return s.ID == k.ID }) {
			out = append(out, k)
		}
	}
	return out
}
