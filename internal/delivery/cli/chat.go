// Package cli runs the interview as a line-oriented terminal conversation.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-hiring-assistant/internal/domain"
)

// ExitKeywords end the conversation at any prompt.
var ExitKeywords = map[string]bool{
	"exit": true, "quit": true, "bye": true, "goodbye": true, "stop": true, "end": true,
}

var errExit = errors.New("candidate ended the conversation")

type Chat struct {
	uc        domain.InterviewUsecase
	sessionID string
	in        *bufio.Scanner
	out       io.Writer
}

func NewChat(uc domain.InterviewUsecase, sessionID string, in io.Reader, out io.Writer) *Chat {
	return &Chat{uc: uc, sessionID: sessionID, in: bufio.NewScanner(in), out: out}
}

// Run drives one interview from consent to the final score.
func (c *Chat) Run(ctx context.Context) error {
	err := c.run(ctx)
	if errors.Is(err, errExit) {
		c.say("Thank you for your time. Goodbye!")
		_, clearErr := c.uc.Clear(ctx, c.sessionID, false)
		return clearErr
	}
	return err
}

func (c *Chat) run(ctx context.Context) error {
	c.say("Hello! I'm the TalentScout hiring assistant. Type 'exit' at any time to leave.")
	c.say("Your details are stored only in anonymized form (salted hashes) and used for screening.")

	accepted, err := c.confirm("Do you consent to this data collection? (yes/no)")
	if err != nil {
		return err
	}
	if _, err := c.uc.GiveConsent(ctx, c.sessionID, accepted); err != nil {
		return err
	}
	if !accepted {
		c.say("Understood. No information will be collected. Goodbye!")
		return nil
	}

	sess, err := c.submitForm(ctx)
	if err != nil {
		return err
	}

	for sess.State == domain.StateAskingQuestions {
		q, ok := sess.CurrentQuestion()
		if !ok {
			break
		}
		answer, err := c.ask(fmt.Sprintf("Question %d/%d: %s", sess.CurrentQ+1, len(sess.Questions), q.Question))
		if err != nil {
			return err
		}
		next, err := c.uc.SubmitAnswer(ctx, c.sessionID, answer)
		if next != nil {
			sess = next
		}
		if err != nil && !c.report(err) {
			return err
		}
	}

	for sess.State == domain.StateEvaluating {
		c.say("Evaluation failed: " + sess.LastError)
		retry, err := c.confirm("Retry the evaluation? (yes/no)")
		if err != nil {
			return err
		}
		if !retry {
			return errExit
		}
		next, err := c.uc.RetryEvaluation(ctx, c.sessionID)
		if next != nil {
			sess = next
		}
		if err != nil && !c.report(err) {
			return err
		}
	}

	if sess.Result != nil {
		c.printResult(*sess.Result)
	}
	c.say("Thank you! Our recruiters will reach out with next steps.")
	return nil
}

// submitForm collects the candidate form until it validates and questions are generated.
func (c *Chat) submitForm(ctx context.Context) (*domain.Session, error) {
	for {
		candidate, err := c.readCandidate()
		if err != nil {
			return nil, err
		}
		sess, err := c.uc.SubmitCandidate(ctx, c.sessionID, candidate)
		if err == nil {
			return sess, nil
		}
		if !c.report(err) {
			return nil, err
		}
		again, err := c.confirm("Would you like to try again? (yes/no)")
		if err != nil {
			return nil, err
		}
		if !again {
			return nil, errExit
		}
	}
}

func (c *Chat) readCandidate() (domain.Candidate, error) {
	var cand domain.Candidate
	var err error

	if cand.Name, err = c.ask("Full name:"); err != nil {
		return cand, err
	}
	if cand.Email, err = c.ask("Email:"); err != nil {
		return cand, err
	}
	if cand.Phone, err = c.ask("Phone number:"); err != nil {
		return cand, err
	}
	if cand.YearsExp, err = c.askInt("Years of experience:"); err != nil {
		return cand, err
	}
	positions, err := c.ask("Desired positions (comma separated):")
	if err != nil {
		return cand, err
	}
	cand.DesiredPositions = splitList(positions)
	if cand.Location, err = c.ask("Current location:"); err != nil {
		return cand, err
	}
	stack, err := c.ask("Tech stack (comma separated):")
	if err != nil {
		return cand, err
	}
	cand.TechStack = splitList(stack)

	if cand.YearsExp == 0 {
		f := &domain.FresherDetails{}
		prompts := []struct {
			label string
			dst   *string
		}{
			{"Degree:", &f.Degree},
			{"Domain / specialization:", &f.Domain},
			{"CGPA:", &f.CGPA},
			{"12th marks:", &f.Marks12th},
			{"10th marks:", &f.Marks10th},
		}
		for _, p := range prompts {
			if *p.dst, err = c.ask(p.label); err != nil {
				return cand, err
			}
		}
		cand.Fresher = f
		return cand, nil
	}

	e := &domain.ExperienceDetails{}
	if e.LastCompany, err = c.ask("Last company:"); err != nil {
		return cand, err
	}
	if e.YearsInCompany, err = c.askInt("Years in that company:"); err != nil {
		return cand, err
	}
	if e.PositionInCompany, err = c.ask("Position in that company:"); err != nil {
		return cand, err
	}
	cand.Experience = e
	return cand, nil
}

// report prints recoverable errors and returns false for anything else.
func (c *Chat) report(err error) bool {
	var (
		valErr   *domain.ValidationError
		cfgErr   *domain.ConfigError
		svcErr   *domain.ServiceError
		parseErr *domain.ResponseParseError
	)
	switch {
	case errors.As(err, &valErr):
		for _, m := range valErr.Messages {
			c.say("  - " + m)
		}
	case errors.As(err, &cfgErr):
		c.say(cfgErr.Message)
	case errors.As(err, &svcErr):
		c.say("The completion service is unavailable: " + svcErr.Err.Error())
	case errors.As(err, &parseErr):
		c.say("The model returned an unreadable response.")
	default:
		return false
	}
	return true
}

func (c *Chat) printResult(r domain.EvaluationResult) {
	c.say("Evaluation results:")
	for _, s := range r.Results {
		c.say(fmt.Sprintf("  [%d/10] %s", s.Score, s.Question))
		if s.Feedback != "" {
			c.say("         " + s.Feedback)
		}
	}
	c.say(fmt.Sprintf("Final average score: %.2f", r.FinalAverageScore))
}

func (c *Chat) say(line string) {
	fmt.Fprintln(c.out, line)
}

// ask prints prompt and reads one line. Exit keywords and end of input yield errExit.
func (c *Chat) ask(prompt string) (string, error) {
	c.say(prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errExit
	}
	line := strings.TrimSpace(c.in.Text())
	if ExitKeywords[strings.ToLower(line)] {
		return "", errExit
	}
	return line, nil
}

func (c *Chat) askInt(prompt string) (int, error) {
	for {
		line, err := c.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(line)
		if convErr == nil {
			return n, nil
		}
		c.say("Please enter a whole number.")
	}
}

func (c *Chat) confirm(prompt string) (bool, error) {
	for {
		line, err := c.ask(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		c.say("Please answer yes or no.")
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
