package storage

import (
	"reflect"
	"testing"

	"folding-rewards/internal/common"
)

func TestRoundStore_SaveAndGet(t *testing.T) {
	s := NewRoundStore(10)
	s.SaveRound(RoundResult{RoundID: "r1", PDBID: "1ubq", Rewards: common.RewardVector{1, 0}})

	got, ok := s.GetRound("r1")
	if !ok {
		t.Fatal("La ronda r1 deberia existir")
	}
	if got.PDBID != "1ubq" || !reflect.DeepEqual(got.Rewards, common.RewardVector{1, 0}) {
		t.Errorf("Ronda inesperada: %+v", got)
	}
	if _, ok := s.GetRound("nope"); ok {
		t.Error("Una ronda inexistente no deberia encontrarse")
	}
}

func TestRoundStore_EvictsOldest(t *testing.T) {
	s := NewRoundStore(2)
	for _, id := range []string{"a", "b", "c"} {
		s.SaveRound(RoundResult{RoundID: id})
	}
	// Re-guardar una ronda existente no cambia su posicion
	s.SaveRound(RoundResult{RoundID: "b", PDBID: "otra"})

	if _, ok := s.GetRound("a"); ok {
		t.Error("La ronda mas antigua deberia haberse descartado")
	}
	if got := s.RecentRounds(); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Orden esperado [b c], obtenido %v", got)
	}
	if r, _ := s.GetRound("b"); r.PDBID != "otra" {
		t.Errorf("La ronda b deberia estar actualizada: %+v", r)
	}
}
