package simulator

import (
	"github.com/lox/bjsim/internal/deck"
	"github.com/lox/bjsim/internal/rules"
	"github.com/lox/bjsim/internal/statistics"
	"github.com/lox/bjsim/internal/strategy"
)

// Round records everything one resolved round did
type Round struct {
	Bet     float64 // Initial wager before doubles and splits
	Net     float64 // Player net including insurance
	Wagered float64 // Sum of the final bets of every hand

	Hands  []Hand
	Dealer []deck.Card

	PlayerBlackjack bool
	DealerBlackjack bool

	Insured      bool
	InsuranceNet float64

	Splits         int
	InvalidActions int
}

// Result converts the round into a statistics sample
func (r *Round) Result() statistics.RoundResult {
	res := statistics.RoundResult{
		Net:             r.Net,
		Wagered:         r.Wagered,
		Hands:           len(r.Hands),
		Blackjack:       r.PlayerBlackjack,
		DealerBlackjack: r.DealerBlackjack,
		Splits:          r.Splits,
		InsuranceTaken:  r.Insured,
		InsuranceNet:    r.InsuranceNet,
		InvalidActions:  r.InvalidActions,
	}
	for _, h := range r.Hands {
		switch h.Status {
		case Busted:
			res.Busts++
		case Surrendered:
			res.Surrenders++
		}
		if h.Doubled {
			res.Doubles++
		}
	}
	return res
}

// PlayRound deals and resolves one round against the shoe and returns its
// record. The bankroll is not touched; Run applies the net.
func (s *Simulator) PlayRound() Round {
	bet := s.strategy.Bet(s.shoe.DecksRemaining())
	round := Round{Bet: bet}

	player := []deck.Card{s.shoe.Deal(), s.shoe.Deal()}
	upcard, hole := s.shoe.Deal(), s.shoe.Deal()
	round.Dealer = []deck.Card{upcard, hole}

	for _, c := range player {
		s.strategy.UpdateCount(c)
	}
	s.strategy.UpdateCount(upcard)

	// The hole card is revealed once, whichever way the round ends
	defer s.strategy.UpdateCount(hole)

	round.PlayerBlackjack = rules.IsBlackjack(player)
	round.DealerBlackjack = rules.IsBlackjack(round.Dealer)

	if round.PlayerBlackjack {
		hand := Hand{Cards: player, Bet: bet, Status: Stood}
		if !round.DealerBlackjack {
			round.Net = bet * s.rules.BlackjackPayout
		}
		s.finish(&round, []Hand{hand})
		return round
	}

	if upcard.IsAce() && s.strategy.WantsInsurance(s.shoe.DecksRemaining()) {
		round.Insured = true
		stake := bet / 2
		if round.DealerBlackjack {
			// 2:1 on half the bet covers the main bet exactly
			round.InsuranceNet = stake * 2
		} else {
			round.InsuranceNet = -stake
		}
		round.Net += round.InsuranceNet
	}

	if round.DealerBlackjack {
		hand := Hand{Cards: player, Bet: bet, Status: Stood}
		round.Net -= bet
		s.finish(&round, []Hand{hand})
		return round
	}

	hands := s.playerTurn(&round, Hand{Cards: player, Bet: bet}, upcard)

	for s.rules.DealerShouldHit(round.Dealer) {
		c := s.shoe.Deal()
		s.strategy.UpdateCount(c)
		round.Dealer = append(round.Dealer, c)
	}

	dealerTotal := rules.HandValue(round.Dealer)
	for i := range hands {
		round.Net += hands[i].Settle(dealerTotal)
	}
	s.finish(&round, hands)
	return round
}

func (s *Simulator) finish(round *Round, hands []Hand) {
	round.Hands = hands
	for _, h := range hands {
		round.Wagered += h.Bet
	}
	s.logger.Debug("Round settled",
		"hands", len(hands),
		"dealer", formatCards(round.Dealer),
		"net", round.Net,
		"wagered", round.Wagered)
}

// playerTurn plays the initial hand and every hand split from it. Pending
// hands form a queue; a split pushes both halves to its front so they are
// finished before any later hand.
func (s *Simulator) playerTurn(round *Round, initial Hand, upcard deck.Card) []Hand {
	pending := []Hand{initial}
	var done []Hand

	for len(pending) > 0 {
		h := pending[0]
		pending = pending[1:]

		second, split := s.playHand(round, &h, upcard, len(done)+len(pending)+1)
		if split {
			round.Splits++
			pending = append([]Hand{h, second}, pending...)
			continue
		}
		done = append(done, h)
	}
	return done
}

// playHand acts on h until it is no longer active, or until it splits, in
// which case h becomes the first half and the second half is returned.
func (s *Simulator) playHand(round *Round, h *Hand, upcard deck.Card, hands int) (Hand, bool) {
	for h.Status == Active {
		action, err := s.strategy.Decide(h.Cards, upcard, s.shoe.DecksRemaining())
		if err != nil {
			round.InvalidActions++
			s.logger.Warn("Invalid chart action, standing", "hand", h.String(), "upcard", upcard.String(), "error", err)
		}

		switch action {
		case strategy.Hit:
			s.hit(h)
		case strategy.Stand:
			h.Status = Stood
		case strategy.DoubleHit:
			if s.canDouble(h) {
				s.double(h)
			} else {
				s.hit(h)
			}
		case strategy.DoubleStand:
			if s.canDouble(h) {
				s.double(h)
			} else {
				h.Status = Stood
			}
		case strategy.Split:
			if s.canSplit(h, hands) {
				return s.split(h), true
			}
			h.Status = Stood
		case strategy.SplitHit:
			if s.rules.DoubleAfterSplit && s.canSplit(h, hands) {
				return s.split(h), true
			}
			s.hit(h)
		case strategy.SurrenderHit:
			if s.canSurrender(h) {
				h.Status = Surrendered
			} else {
				s.hit(h)
			}
		default:
			h.Status = Stood
		}
	}
	return Hand{}, false
}

func (s *Simulator) draw(h *Hand) {
	c := s.shoe.Deal()
	s.strategy.UpdateCount(c)
	h.Cards = append(h.Cards, c)
}

func (s *Simulator) hit(h *Hand) {
	s.draw(h)
	if rules.IsBusted(h.Cards) {
		h.Status = Busted
	}
}

func (s *Simulator) double(h *Hand) {
	h.Bet *= 2
	h.Doubled = true
	s.draw(h)
	if rules.IsBusted(h.Cards) {
		h.Status = Busted
	} else {
		h.Status = Stood
	}
}

func (s *Simulator) split(h *Hand) Hand {
	moved := h.Cards[1]
	firstCard, secondCard := s.shoe.Deal(), s.shoe.Deal()
	s.strategy.UpdateCount(firstCard)
	s.strategy.UpdateCount(secondCard)

	h.Cards = []deck.Card{h.Cards[0], firstCard}
	h.Split = true
	return Hand{
		Cards: []deck.Card{moved, secondCard},
		Bet:   h.Bet,
		Split: true,
	}
}

func (s *Simulator) canDouble(h *Hand) bool {
	return len(h.Cards) == 2 && (!h.Split || s.rules.DoubleAfterSplit)
}

func (s *Simulator) canSplit(h *Hand, hands int) bool {
	return strategy.IsPair(h.Cards) && s.rules.CanSplitAgain(hands)
}

func (s *Simulator) canSurrender(h *Hand) bool {
	return s.rules.SurrenderAllowed && len(h.Cards) == 2
}
