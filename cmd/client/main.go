// Command client is an interactive REPL for talking to a running server
// over the HTTP/JSON boundary described by spec.md §6.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"bourse/internal/core"
	"bourse/internal/httpapi"
)

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string) *client {
	return &client{baseURL: strings.TrimRight(baseURL, "/"), http: &http.Client{}}
}

func (c *client) post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}

func (c *client) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *client) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(text))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *client) deposit() (core.Tx, error) {
	account := readFromStdin("Account:")
	amount, err := readUint("Amount:")
	if err != nil {
		return core.Tx{}, err
	}

	var tx core.Tx
	err = c.post("/account/deposit", httpapi.AccountUpdateRequest{Signer: account, Amount: amount}, &tx)
	return tx, err
}

func (c *client) withdraw() (core.Tx, error) {
	account := readFromStdin("Account:")
	amount, err := readUint("Amount:")
	if err != nil {
		return core.Tx{}, err
	}

	var tx core.Tx
	err = c.post("/account/withdraw", httpapi.AccountUpdateRequest{Signer: account, Amount: amount}, &tx)
	return tx, err
}

func (c *client) send() ([2]core.Tx, error) {
	sender := readFromStdin("Sender Account:")
	recipient := readFromStdin("Recipient Account:")
	amount, err := readUint("Amount:")
	if err != nil {
		return [2]core.Tx{}, err
	}

	var txs [2]core.Tx
	err = c.post("/account/send", httpapi.SendRequest{Sender: sender, Recipient: recipient, Amount: amount}, &txs)
	return txs, err
}

func (c *client) order() (core.Receipt, error) {
	account := readFromStdin("Account:")
	side, err := readSide()
	if err != nil {
		return core.Receipt{}, err
	}
	amount, err := readUint("Amount:")
	if err != nil {
		return core.Receipt{}, err
	}
	price, err := readUint("Price:")
	if err != nil {
		return core.Receipt{}, err
	}

	order := core.Order{Signer: account, Side: side, Amount: amount, Price: price}

	var receipt core.Receipt
	err = c.post("/order", order, &receipt)
	return receipt, err
}

func (c *client) balance() (uint64, error) {
	account := readFromStdin("Account:")

	var balance uint64
	err := c.post("/balance", httpapi.BalanceRequest{Signer: account}, &balance)
	return balance, err
}

func (c *client) accounts() (map[string]uint64, error) {
	var accounts map[string]uint64
	err := c.get("/accounts", &accounts)
	return accounts, err
}

func (c *client) orderbook() ([]core.PartialOrder, error) {
	var book []core.PartialOrder
	err := c.get("/orderbook", &book)
	return book, err
}

func (c *client) txlog() ([]core.Tx, error) {
	var log []core.Tx
	err := c.get("/txlog", &log)
	return log, err
}

var stdin = bufio.NewReader(os.Stdin)

func readFromStdin(label string) string {
	fmt.Println(label)
	line, _ := stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

func readUint(label string) (uint64, error) {
	return strconv.ParseUint(readFromStdin(label), 10, 64)
}

func readSide() (core.Side, error) {
	switch strings.ToLower(readFromStdin("Buy or Sell?:")) {
	case "buy":
		return core.Buy, nil
	case "sell":
		return core.Sell, nil
	default:
		return 0, fmt.Errorf("unsupported order side")
	}
}

func handleCommand[T any](result T, err error) {
	if err != nil {
		fmt.Printf("Operation failed: %v\n", err)
		return
	}
	encoded, _ := json.MarshalIndent(result, "", "  ")
	fmt.Printf("Operation successful:\n%s\n", encoded)
}

func main() {
	serverURL := flag.String("server", "http://127.0.0.1:9001", "base URL of the bourse server")
	flag.Parse()

	c := newClient(*serverURL)

	fmt.Println("Hello, accounting world!")

	for {
		input := readFromStdin("Choose operation [deposit(d), withdraw(w), send(s), balance(b), accounts(a), txlog(tx), order(o), orderbook(ob), quit(q)], confirm with return:")
		switch input {
		case "deposit", "d":
			handleCommand(c.deposit())
		case "withdraw", "w":
			handleCommand(c.withdraw())
		case "send", "s":
			handleCommand(c.send())
		case "order", "o":
			handleCommand(c.order())
		case "balance", "b":
			handleCommand(c.balance())
		case "accounts", "a":
			handleCommand(c.accounts())
		case "orderbook", "ob":
			handleCommand(c.orderbook())
		case "txlog", "tx":
			handleCommand(c.txlog())
		case "quit", "q":
			fmt.Println("Quitting...")
			return
		default:
			fmt.Printf("Invalid option: '%s'\n", input)
		}
	}
}
