// Package console терминальный тренажёр базовой стратегии.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"blackjack-trainer/internal/game"
	"blackjack-trainer/internal/strategy"

	"github.com/charmbracelet/log"
)

var errQuit = errors.New("quit")

type Options struct {
	Decks  int
	Bet    float64
	Hints  bool
	Strict bool
	Rand   *rand.Rand
	// Shoe если задан, Decks и Rand не используются
	Shoe   *game.Shoe
	Logger *log.Logger
}

type trainer struct {
	in     *bufio.Scanner
	out    io.Writer
	opts   Options
	engine *game.Engine
	coach  *strategy.Coach
	style  styles
	net    float64
}

// Run играет раунды, пока игрок не ответит "n" или не закончится ввод
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	shoe := opts.Shoe
	if shoe == nil {
		shoe = game.NewShoe(opts.Decks, opts.Rand)
	}
	engineOpts := []game.Option{game.WithShoe(shoe)}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, game.WithLogger(opts.Logger))
	}
	engine := game.NewEngine(engineOpts...)

	if opts.Bet != 0 {
		if err := engine.SetBet(opts.Bet); err != nil {
			return fmt.Errorf("invalid bet %v: %w", opts.Bet, err)
		}
	}

	t := &trainer{
		in:     bufio.NewScanner(in),
		out:    out,
		opts:   opts,
		engine: engine,
		coach:  strategy.NewCoach(engine, opts.Strict),
		style:  newStyles(out),
	}

	t.println(t.style.header.Render(" BLACKJACK: тренажёр базовой стратегии "))
	if opts.Strict {
		t.println(t.style.muted.Render("Строгий режим: ходы против стратегии не выполняются"))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := t.playRound()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			return err
		}

		again, err := t.askAgain()
		if err != nil || !again {
			break
		}
	}

	t.println("\nСпасибо за игру! Итог сессии: " + signed(t.net))
	return nil
}

// ============== ВВОД/ВЫВОД ==============

func (t *trainer) println(s string) {
	fmt.Fprintln(t.out, s)
}

func (t *trainer) readLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.ToLower(strings.TrimSpace(t.in.Text())), nil
}

func (t *trainer) askAgain() (bool, error) {
	line, err := t.readLine("\nЕщё раздачу? (Y/n): ")
	if err != nil {
		return false, err
	}
	switch line {
	case "n", "no", "н", "нет", "q":
		return false, nil
	}
	return true, nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func signed(v float64) string {
	if v >= 0 {
		return "+" + money(v)
	}
	return money(v)
}

// ============== СТОЛ ==============

func handValue(h game.Hand) string {
	if h.IsSoft() {
		return fmt.Sprintf("%d, мягкая", h.Value())
	}
	return strconv.Itoa(h.Value())
}

func (t *trainer) printTable(showDealerHand bool) {
	e := t.engine

	dealer := e.DealerHand()
	if showDealerHand {
		t.println(t.style.dealer.Render(fmt.Sprintf("Дилер: %s (%d)", dealer, dealer.Value())))
	} else if up, ok := e.DealerUpCard(); ok {
		t.println(t.style.dealer.Render(fmt.Sprintf("Дилер: %s [?]", up)))
	}

	hands := e.PlayerHands()
	if len(hands) == 1 {
		t.println(t.style.player.Render(fmt.Sprintf("Вы: %s (%s)", hands[0].Hand, handValue(hands[0].Hand))))
		return
	}

	playing := e.State() == game.StatePlayerTurn
	for _, h := range hands {
		marker := " "
		if playing && h.Index == e.ActiveHandIndex() {
			marker = "→"
		}
		line := fmt.Sprintf("%s Рука %d: %s (%s), ставка %s", marker, h.Index+1, h.Hand, handValue(h.Hand), money(h.Bet))
		if h.SplitFromAces {
			line += ", сплит тузов"
		}
		if h.IsBusted() {
			line += ", перебор"
		}
		t.println(t.style.player.Render(line))
	}
}

func (t *trainer) menu() string {
	e := t.engine
	var items []string
	if e.CanHit() {
		items = append(items, "[h] Hit")
	}
	if e.CanStand() {
		items = append(items, "[s] Stand")
	}
	if e.CanDouble() {
		items = append(items, "[d] Double")
	}
	if e.CanSplit() {
		items = append(items, "[p] Split")
	}
	if e.CanUndo() {
		items = append(items, "[u] Отмена")
	}
	items = append(items, "[q] Выход")
	return strings.Join(items, "  ")
}

// ============== РАУНД ==============

var inputActions = map[string]game.Action{
	"h": game.Hit, "hit": game.Hit,
	"s": game.Stand, "stand": game.Stand,
	"d": game.Double, "double": game.Double,
	"p": game.Split, "split": game.Split,
}

func (t *trainer) playRound() error {
	e := t.engine
	e.StartNewHand()
	t.coach.Reset()

	t.println("\n" + t.style.header.Render(" НОВАЯ РАЗДАЧА ") + t.style.muted.Render(" ставка "+money(e.Bet())))
	t.printTable(false)

	if hands := e.PlayerHands(); len(hands) > 0 && hands[0].IsBlackjack() {
		t.println(t.style.win.Render("🎉 BLACKJACK!"))
	}

	for e.State() == game.StatePlayerTurn {
		if t.opts.Hints {
			if action, ok := strategy.Advise(e); ok {
				t.println(t.style.hint.Render("💡 Подсказка: " + action.String()))
			}
		}
		t.println(t.style.muted.Render(t.menu()))

		line, err := t.readLine("Ваш ход: ")
		if err != nil {
			return err
		}

		switch line {
		case "q", "quit":
			return errQuit
		case "u", "undo":
			if !e.UndoLastAction() {
				t.println("Нечего отменять")
				continue
			}
			t.println("↩ Ход отменён")
		default:
			action, ok := inputActions[line]
			if !ok {
				t.println("Неверный ввод, попробуйте ещё раз")
				continue
			}
			if !t.play(action) {
				continue
			}
		}

		if e.State() == game.StatePlayerTurn {
			t.printTable(false)
		}
	}

	t.finish()
	return nil
}

func (t *trainer) play(action game.Action) bool {
	e := t.engine
	index := e.ActiveHandIndex()

	executed, correct, hinted := t.coach.Try(action, func() bool { return e.Apply(action) })
	if !executed {
		if hinted && t.coach.Attempted(action) {
			t.println(t.style.lose.Render("🎓 Не по базовой стратегии, правильно " + correct.String()))
		} else {
			t.println("Ход недоступен")
		}
		return false
	}

	switch action {
	case game.Hit, game.Double:
		hands := e.PlayerHands()
		if index < len(hands) {
			cards := hands[index].Hand.Cards
			t.println("→ Карта: " + cards[len(cards)-1].String())
		}
	case game.Split:
		t.println("→ Пара разделена")
	}
	return true
}

func (t *trainer) resultLine(r game.HandResult) string {
	text := fmt.Sprintf("Рука %d: %s (ставка %s, выплата %s)", r.HandIndex+1, r.Result, money(r.Bet), money(r.Payout))
	switch r.Result {
	case game.ResultBlackjack, game.ResultPlayerWin:
		return t.style.win.Render(text + " 🎉 Вы выиграли")
	case game.ResultDealerWin:
		return t.style.lose.Render(text + " ❌ Дилер выиграл")
	default:
		return t.style.push.Render(text + " 🤝 Ничья")
	}
}

func (t *trainer) finish() {
	e := t.engine

	t.println("\n" + t.style.header.Render(" ИТОГ "))
	t.printTable(true)

	var bet, payout float64
	for _, r := range e.HandResults() {
		bet += r.Bet
		payout += r.Payout
		t.println(t.resultLine(r))
	}
	net := payout - bet
	t.net += net
	t.println(fmt.Sprintf("Итог: %s", signed(net)))

	t.println("\n" + strategy.Analyze(e).Report())
}
