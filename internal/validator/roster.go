package validator

import "folding-rewards/internal/common"

// validateRoster exige que responses y uids esten alineados uno a uno y que
// no haya uids repetidos: el orden de uids es el orden canonico de la ronda.
func validateRoster(responses []common.WorkerResponse, uids []common.WorkerID) error {
	if len(responses) != len(uids) {
		return common.InvalidRoster("%d respuestas para %d uids", len(responses), len(uids))
	}
	seen := make(map[common.WorkerID]bool, len(uids))
	for i, uid := range uids {
		if seen[uid] {
			return common.InvalidRoster("uid %d repetido", uid)
		}
		seen[uid] = true
		if responses[i].UID != uid {
			return common.InvalidRoster("la respuesta %d es del uid %d, se esperaba %d", i, responses[i].UID, uid)
		}
	}
	return nil
}
