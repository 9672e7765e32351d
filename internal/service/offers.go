package service

import (
	"context"
	"errors"

	"github.com/HeWhoRoams/puzzle-raid-saga/internal/constants"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/logging"
	"github.com/HeWhoRoams/puzzle-raid-saga/internal/progression"
)

// PurchaseOffer buys one of the offers shown after a level-up and returns
// to play.
func (s *Session) PurchaseOffer(ctx context.Context, offerID string) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen != ScreenItemOffer {
			return ErrNotReady
		}
		var offer *progression.Offer
		for i := range s.offers {
			if s.offers[i].ID == offerID {
				offer = &s.offers[i]
				break
			}
		}
		if offer == nil {
			return ErrOfferNotFound
		}

		p, err := progression.PurchaseOffer(s.stats, s.progression, *offer, s.cfg)
		switch {
		case errors.Is(err, progression.ErrStaleOffer), errors.Is(err, progression.ErrUnknownItem):
			return ErrOfferNotFound
		case err != nil:
			return err
		}

		s.stats = p.Stats
		s.addLog(p.Log)
		if p.Discovered {
			s.progression = p.Progression
			s.store.SaveProgression(ctx, s.progression)
			s.addLog("New item discovered and unlocked for future runs!")
		}
		s.offers = nil
		s.screen = ScreenPlaying
		s.saveRunLocked(ctx)
		logging.Info("offer purchased", logging.Fields{constants.LogFieldOffer: offerID, constants.LogFieldDepth: s.depth})
		return nil
	})
}

// SkipOffers declines every offer and returns to play.
func (s *Session) SkipOffers(ctx context.Context) (Snapshot, error) {
	return s.mutate(func() error {
		if s.screen != ScreenItemOffer {
			return ErrNotReady
		}
		s.offers = nil
		s.addLog("You decide to save your gold.")
		s.screen = ScreenPlaying
		s.saveRunLocked(ctx)
		return nil
	})
}
