package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"pokerv2-server/internal/util"
	"pokerv2-server/pkg/db"
	"pokerv2-server/pkg/model"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var command = flag.String("c", "user", "specifies the command (user, credit)")
var name = flag.String("name", "", "the display name of a new user")
var money = flag.Int("money", -1, "the starting balance of a new user, or the amount to credit")
var userID = flag.Int64("user", 0, "the user to credit")

func main() {
	flag.Parse()

	store := model.NewPGStore(db.Instance())
	ctx := context.Background()

	switch *command {
	case "user":
		displayName := *name
		if displayName == "" {
			displayName = getString("Name", util.GetRandomName())
		}

		balance := getAmount(*money, "Starting balance")
		user, err := store.CreateUser(ctx, displayName, balance)
		if err != nil {
			logrus.WithError(err).Fatal("could not create user")
		}

		fmt.Printf("Created user %d (%s) with %d\n", user.ID, user.Name, user.Money)

	case "credit":
		id := *userID
		if id <= 0 {
			id = int64(getAmount(-1, "User ID"))
		}

		amount := getAmount(*money, "Amount")
		user, err := store.Credit(ctx, id, amount)
		if err != nil {
			logrus.WithError(err).Fatal("could not credit user")
		}

		fmt.Printf("User %d now has %d\n", user.ID, user.Money)

	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// getAmount returns the flag value, or asks for it when it was not given
func getAmount(flagValue int, question string) int {
	if flagValue >= 0 {
		return flagValue
	}

	if !interactive() {
		logrus.Fatalf("%s is required", strings.ToLower(question))
	}

	for {
		str, err := getInput(question)
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		val, err := strconv.Atoi(str)
		if err != nil || val < 0 {
			_, _ = fmt.Fprintln(os.Stderr, "must be a number zero or greater")
			continue
		}

		return val
	}
}

func getString(question, defaultValue string) string {
	if !interactive() {
		return defaultValue
	}

	str, err := getInput(fmt.Sprintf("%s [%s]", question, defaultValue))
	if err != nil {
		logrus.WithError(err).Fatal("could not get answer")
	}

	if str == "" {
		return defaultValue
	}

	return str
}

var stdin = bufio.NewReader(os.Stdin)

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	str, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
