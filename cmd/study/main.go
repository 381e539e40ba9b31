// cmd/study は学習用のターミナルクライアント
package main

func main() {
	Execute()
}
