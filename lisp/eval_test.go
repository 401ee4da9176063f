package lisp_test

import (
	"testing"

	"github.com/wisp-lang/wisp/wisptest"
)

func TestEval(t *testing.T) {
	tests := wisptest.TestSuite{
		{Name: "self-evaluating", Tests: wisptest.TestSequence{
			{Expr: `3`, Result: `3`, Output: ``},
			{Expr: `-7`, Result: `-7`, Output: ``},
			{Expr: `nil`, Result: `nil`, Output: ``},
			{Expr: `true`, Result: `true`, Output: ``},
			{Expr: `false`, Result: `false`, Output: ``},
			{Expr: `"a string"`, Result: `"a string"`, Output: ``},
			{Expr: `:kw`, Result: `:kw`, Output: ``},
			{Expr: `()`, Result: `()`, Output: ``},
		}},
		{Name: "symbols", Tests: wisptest.TestSequence{
			{Expr: `(def! x 3)`, Result: `3`, Output: ``},
			{Expr: `x`, Result: `3`, Output: ``},
			{Expr: `who`, Result: `error: unbound symbol: who`, Output: ``},
		}},
		{Name: "arithmetic", Tests: wisptest.TestSequence{
			{Expr: `(+ 1 2)`, Result: `3`, Output: ``},
			{Expr: `(+ 1 2 3 4)`, Result: `10`, Output: ``},
			{Expr: `(- 10 4)`, Result: `6`, Output: ``},
			{Expr: `(- 5)`, Result: `-5`, Output: ``},
			{Expr: `(* 3 4)`, Result: `12`, Output: ``},
			{Expr: `(/ 7 2)`, Result: `3`, Output: ``},
			{Expr: `(/ -7 2)`, Result: `-4`, Output: ``},
			{Expr: `(/ 7 -2)`, Result: `-4`, Output: ``},
			{Expr: `(/ -7 -2)`, Result: `3`, Output: ``},
			{Expr: `(/ 8 2 2)`, Result: `2`, Output: ``},
			{Expr: `(/ 1 0)`, Result: `error: division by zero`, Output: ``},
			{Expr: `(+ 1 "2")`, Result: `error: argument is not an int: string`, Output: ``},
			{Expr: `(* 1 nil)`, Result: `error: argument is not an int: nil`, Output: ``},
		}},
		{Name: "comparisons", Tests: wisptest.TestSequence{
			{Expr: `(< 1 2)`, Result: `true`, Output: ``},
			{Expr: `(<= 2 2)`, Result: `true`, Output: ``},
			{Expr: `(> 1 2)`, Result: `false`, Output: ``},
			{Expr: `(>= 2 3)`, Result: `false`, Output: ``},
			{Expr: `(< "a" 2)`, Result: `error: first argument is not an int: string`, Output: ``},
		}},
		{Name: "equality", Tests: wisptest.TestSequence{
			{Expr: `(= 1 1)`, Result: `true`, Output: ``},
			{Expr: `(= 1 "1")`, Result: `false`, Output: ``},
			{Expr: `(= nil nil)`, Result: `true`, Output: ``},
			{Expr: `(= (list 1 2 3) (list 1 2 3))`, Result: `true`, Output: ``},
			{Expr: `(= (list 1 2 3) [1 2 3])`, Result: `true`, Output: ``},
			{Expr: `(= [] ())`, Result: `true`, Output: ``},
			{Expr: `(= (list 1 2) (list 1 2 3))`, Result: `false`, Output: ``},
			{Expr: `(= (hash-map "a" 1) (hash-map "a" 1))`, Result: `true`, Output: ``},
			{Expr: `(= (hash-map "a" 1 "b" 2) (hash-map "b" 2 "a" 1))`, Result: `true`, Output: ``},
			{Expr: `(= (hash-map "a" 1) (hash-map :a 1))`, Result: `false`, Output: ``},
			{Expr: `(= (atom 1) (atom 1))`, Result: `false`, Output: ``},
		}},
		{Name: "if", Tests: wisptest.TestSequence{
			{Expr: `(if true 1 2)`, Result: `1`, Output: ``},
			{Expr: `(if false 1 2)`, Result: `2`, Output: ``},
			{Expr: `(if nil 1 2)`, Result: `2`, Output: ``},
			{Expr: `(if 0 1 2)`, Result: `1`, Output: ``},
			{Expr: `(if "" 1 2)`, Result: `1`, Output: ``},
			{Expr: `(if () 1 2)`, Result: `1`, Output: ``},
			{Expr: `(if false 1)`, Result: `nil`, Output: ``},
			{Expr: `(if true 1)`, Result: `1`, Output: ``},
		}},
		{Name: "do", Tests: wisptest.TestSequence{
			{Expr: `(do)`, Result: `nil`, Output: ``},
			{Expr: `(do 1 2 3)`, Result: `3`, Output: ``},
			{Expr: `(do (def! dx 7) dx)`, Result: `7`, Output: ``},
			{Expr: `(do (prn 1) 2)`, Result: `2`, Output: "1\n"},
		}},
		{Name: "let*", Tests: wisptest.TestSequence{
			{Expr: `(let* (x 1) x)`, Result: `1`, Output: ``},
			{Expr: `(let* [x 1] x)`, Result: `1`, Output: ``},
			{Expr: `(let* (a 1 b (+ a 1)) (+ a b))`, Result: `3`, Output: ``},
			{Expr: `(let* (x 1) (let* (x 2) x))`, Result: `2`, Output: ``},
			{Expr: `(def! x 9)`, Result: `9`, Output: ``},
			{Expr: `(let* (x 2) x)`, Result: `2`, Output: ``},
			{Expr: `x`, Result: `9`, Output: ``},
			{Expr: `(let* (x) x)`, Result: `error: let*: uneven number of binding forms: 1`, Output: ``},
		}},
		{Name: "fn* basics", Tests: wisptest.TestSequence{
			{Expr: `(fn* (x) x)`, Result: `(fn* (x) x)`, Output: ``},
			{Expr: `((fn* (x) x) 1)`, Result: `1`, Output: ``},
			{Expr: `((fn* (x y) (+ x y)) 1 2)`, Result: `3`, Output: ``},
			{Expr: `((fn* () 7))`, Result: `7`, Output: ``},
			{Expr: `((fn* (x) x) 1 2)`, Result: `error: function expects 1 arguments (got 2)`, Output: ``},
			{Expr: `((fn* (x y) x) 1)`, Result: `error: function expects 2 arguments (got 1)`, Output: ``},
			{Expr: `(7 8)`, Result: `error: first element of expression is not a function: int`, Output: ``},
		}},
		{Name: "fn* variadic", Tests: wisptest.TestSequence{
			{Expr: `((fn* (& xs) xs) 1 2 3)`, Result: `(1 2 3)`, Output: ``},
			{Expr: `((fn* (& xs) xs))`, Result: `()`, Output: ``},
			{Expr: `((fn* (a & xs) (list a xs)) 1 2 3)`, Result: `(1 (2 3))`, Output: ``},
			{Expr: `((fn* (a & xs) xs) 1)`, Result: `()`, Output: ``},
			{Expr: `((fn* (a & xs) xs))`, Result: `error: function expects at least 1 arguments (got 0)`, Output: ``},
		}},
		{Name: "closures", Tests: wisptest.TestSequence{
			{Expr: `(def! plus5 ((fn* (x) (fn* (y) (+ x y))) 5))`, Result: `(fn* (y) (+ x y))`, Output: ``},
			{Expr: `(plus5 3)`, Result: `8`, Output: ``},
			{Expr: `(def! counter (fn* () (let* (c (atom 0)) (fn* () (swap! c + 1)))))`,
				Result: `(fn* () (let* (c (atom 0)) (fn* () (swap! c + 1))))`, Output: ``},
			{Expr: `(def! tick (counter))`, Result: `(fn* () (swap! c + 1))`, Output: ``},
			{Expr: `(tick)`, Result: `1`, Output: ``},
			{Expr: `(tick)`, Result: `2`, Output: ``},
		}},
		{Name: "tail recursion", Tests: wisptest.TestSequence{
			{Expr: `(def! countdown (fn* (n) (if (> n 0) (countdown (- n 1)) n)))`,
				Result: `(fn* (n) (if (> n 0) (countdown (- n 1)) n))`, Output: ``},
			{Expr: `(countdown 100000)`, Result: `0`, Output: ``},
			{Expr: `(def! sum-to (fn* (n acc) (if (= n 0) acc (do (sum-to (- n 1) (+ acc n))))))`,
				Result: `(fn* (n acc) (if (= n 0) acc (do (sum-to (- n 1) (+ acc n)))))`, Output: ``},
			{Expr: `(sum-to 100000 0)`, Result: `5000050000`, Output: ``},
			{Expr: `(def! spin (fn* (n) (let* (m (- n 1)) (if (> m 0) (spin m) m))))`,
				Result: `(fn* (n) (let* (m (- n 1)) (if (> m 0) (spin m) m)))`, Output: ``},
			{Expr: `(spin 100000)`, Result: `0`, Output: ``},
		}},
		{Name: "lists", Tests: wisptest.TestSequence{
			{Expr: `(list 1 2 3)`, Result: `(1 2 3)`, Output: ``},
			{Expr: `(list)`, Result: `()`, Output: ``},
			{Expr: `(list? (list 1))`, Result: `true`, Output: ``},
			{Expr: `(list? [1])`, Result: `false`, Output: ``},
			{Expr: `(list? nil)`, Result: `false`, Output: ``},
			{Expr: `(empty? ())`, Result: `true`, Output: ``},
			{Expr: `(empty? (list 1))`, Result: `false`, Output: ``},
			{Expr: `(empty? nil)`, Result: `true`, Output: ``},
			{Expr: `(count (list 1 2 3))`, Result: `3`, Output: ``},
			{Expr: `(count nil)`, Result: `0`, Output: ``},
			{Expr: `(count 123)`, Result: `0`, Output: ``},
			{Expr: `(cons 1 (list 2 3))`, Result: `(1 2 3)`, Output: ``},
			{Expr: `(cons 1 [2 3])`, Result: `(1 2 3)`, Output: ``},
			{Expr: `(cons 1 2)`, Result: `error: second argument is not a sequence: int`, Output: ``},
			{Expr: `(concat (list 1 2) [3] (list))`, Result: `(1 2 3)`, Output: ``},
			{Expr: `(concat)`, Result: `()`, Output: ``},
			{Expr: `(nth (list 1 2 3) 1)`, Result: `2`, Output: ``},
			{Expr: `(nth [1 2 3] 0)`, Result: `1`, Output: ``},
			{Expr: `(nth (list 1 2 3) 3)`, Result: `error: index out of range: 3 (length 3)`, Output: ``},
			{Expr: `(nth (list 1 2 3) -1)`, Result: `error: index out of range: -1 (length 3)`, Output: ``},
			{Expr: `(first (list 1 2))`, Result: `1`, Output: ``},
			{Expr: `(first ())`, Result: `nil`, Output: ``},
			{Expr: `(first nil)`, Result: `nil`, Output: ``},
			{Expr: `(rest (list 1 2 3))`, Result: `(2 3)`, Output: ``},
			{Expr: `(rest ())`, Result: `()`, Output: ``},
			{Expr: `(rest nil)`, Result: `()`, Output: ``},
			{Expr: `(first 1)`, Result: `error: argument is not a sequence: int`, Output: ``},
		}},
		{Name: "vectors", Tests: wisptest.TestSequence{
			{Expr: `[1 2 3]`, Result: `[1 2 3]`, Output: ``},
			{Expr: `[1 (+ 1 1) 3]`, Result: `[1 2 3]`, Output: ``},
			{Expr: `(vector 1 2)`, Result: `[1 2]`, Output: ``},
			{Expr: `(vec (list 1 2))`, Result: `[1 2]`, Output: ``},
			{Expr: `(vec [1 2])`, Result: `[1 2]`, Output: ``},
			{Expr: `(vector? [1])`, Result: `true`, Output: ``},
			{Expr: `(vector? (list 1))`, Result: `false`, Output: ``},
			{Expr: `(sequential? [1])`, Result: `true`, Output: ``},
			{Expr: `(sequential? (list))`, Result: `true`, Output: ``},
			{Expr: `(sequential? "abc")`, Result: `false`, Output: ``},
		}},
		{Name: "higher order functions", Tests: wisptest.TestSequence{
			{Expr: `(apply + 1 2 (list 3 4))`, Result: `10`, Output: ``},
			{Expr: `(apply list [1 2])`, Result: `(1 2)`, Output: ``},
			{Expr: `(apply (fn* (a b) (- a b)) (list 10 4))`, Result: `6`, Output: ``},
			{Expr: `(apply + 1)`, Result: `error: last argument is not a sequence: int`, Output: ``},
			{Expr: `(map (fn* (x) (* 2 x)) (list 1 2 3))`, Result: `(2 4 6)`, Output: ``},
			{Expr: `(map not [true false])`, Result: `(false true)`, Output: ``},
			{Expr: `(map (fn* (x) (throw "bad")) (list 1))`, Result: `error: bad`, Output: ``},
		}},
		{Name: "maps", Tests: wisptest.TestSequence{
			{Expr: `{"a" 1}`, Result: `{"a" 1}`, Output: ``},
			{Expr: `{"a" (+ 1 1)}`, Result: `{"a" 2}`, Output: ``},
			{Expr: `(hash-map "a" 1 :b 2)`, Result: `{"a" 1 :b 2}`, Output: ``},
			{Expr: `(hash-map "a")`, Result: `error: uneven number of arguments: 1`, Output: ``},
			{Expr: `(map? {})`, Result: `true`, Output: ``},
			{Expr: `(map? (list))`, Result: `false`, Output: ``},
			{Expr: `(def! m (hash-map "a" 1))`, Result: `{"a" 1}`, Output: ``},
			{Expr: `(assoc m "b" 2)`, Result: `{"a" 1 "b" 2}`, Output: ``},
			{Expr: `m`, Result: `{"a" 1}`, Output: ``},
			{Expr: `(dissoc (assoc m "b" 2) "a")`, Result: `{"b" 2}`, Output: ``},
			{Expr: `m`, Result: `{"a" 1}`, Output: ``},
			{Expr: `(get m "a")`, Result: `1`, Output: ``},
			{Expr: `(get m "b")`, Result: `nil`, Output: ``},
			{Expr: `(get nil "a")`, Result: `nil`, Output: ``},
			{Expr: `(contains? m "a")`, Result: `true`, Output: ``},
			{Expr: `(contains? m "b")`, Result: `false`, Output: ``},
			{Expr: `(keys (hash-map "a" 1 :b 2))`, Result: `("a" :b)`, Output: ``},
			{Expr: `(vals (hash-map "a" 1 :b 2))`, Result: `(1 2)`, Output: ``},
			{Expr: `(get (hash-map "a" 1 :a 2) :a)`, Result: `2`, Output: ``},
			{Expr: `(get (hash-map "a" 1 :a 2) "a")`, Result: `1`, Output: ``},
			{Expr: `(hash-map (list 1) 2)`, Result: `error: unhashable type: list`, Output: ``},
		}},
		{Name: "type predicates", Tests: wisptest.TestSequence{
			{Expr: `(symbol? (symbol "abc"))`, Result: `true`, Output: ``},
			{Expr: `(symbol? "abc")`, Result: `false`, Output: ``},
			{Expr: `(keyword? :abc)`, Result: `true`, Output: ``},
			{Expr: `(keyword? "abc")`, Result: `false`, Output: ``},
			{Expr: `(nil? nil)`, Result: `true`, Output: ``},
			{Expr: `(nil? false)`, Result: `false`, Output: ``},
			{Expr: `(true? true)`, Result: `true`, Output: ``},
			{Expr: `(true? 1)`, Result: `false`, Output: ``},
			{Expr: `(false? false)`, Result: `true`, Output: ``},
			{Expr: `(false? nil)`, Result: `false`, Output: ``},
		}},
		{Name: "conversions", Tests: wisptest.TestSequence{
			{Expr: `(symbol "abc")`, Result: `abc`, Output: ``},
			{Expr: `(keyword "abc")`, Result: `:abc`, Output: ``},
			{Expr: `(keyword :abc)`, Result: `:abc`, Output: ``},
			{Expr: `(keyword 1)`, Result: `error: argument is not a string: int`, Output: ``},
		}},
		{Name: "strings and printing", Tests: wisptest.TestSequence{
			{Expr: `(str "a" 1 :b)`, Result: `"a1:b"`, Output: ``},
			{Expr: `(str)`, Result: `""`, Output: ``},
			{Expr: `(pr-str "a" 1)`, Result: `"\"a\" 1"`, Output: ``},
			{Expr: `(prn "hi")`, Result: `nil`, Output: "\"hi\"\n"},
			{Expr: `(prn "a\nb")`, Result: `nil`, Output: "\"a\\nb\"\n"},
			{Expr: `(println "hi")`, Result: `nil`, Output: "hi\n"},
			{Expr: `(println "a" "b")`, Result: `nil`, Output: "a b\n"},
			{Expr: `(println)`, Result: `nil`, Output: "\n"},
		}},
		{Name: "atoms", Tests: wisptest.TestSequence{
			{Expr: `(def! a (atom 2))`, Result: `(atom 2)`, Output: ``},
			{Expr: `(atom? a)`, Result: `true`, Output: ``},
			{Expr: `(atom? 2)`, Result: `false`, Output: ``},
			{Expr: `(deref a)`, Result: `2`, Output: ``},
			{Expr: `@a`, Result: `2`, Output: ``},
			{Expr: `(reset! a 3)`, Result: `3`, Output: ``},
			{Expr: `@a`, Result: `3`, Output: ``},
			{Expr: `(swap! a + 4)`, Result: `7`, Output: ``},
			{Expr: `(swap! a (fn* (x) (* x 2)))`, Result: `14`, Output: ``},
			{Expr: `(def! b a)`, Result: `(atom 14)`, Output: ``},
			{Expr: `(swap! b - 4)`, Result: `10`, Output: ``},
			{Expr: `@a`, Result: `10`, Output: ``},
			{Expr: `(deref 1)`, Result: `error: argument is not an atom: int`, Output: ``},
			{Expr: `(reset! 1 2)`, Result: `error: first argument is not an atom: int`, Output: ``},
			{Expr: `(swap! a 1)`, Result: `error: second argument is not a function: int`, Output: ``},
		}},
		{Name: "throw", Tests: wisptest.TestSequence{
			{Expr: `(throw "boom")`, Result: `error: boom`, Output: ``},
			{Expr: `(throw (list 1 2))`, Result: `error: (1 2)`, Output: ``},
			{Expr: `(throw {:cause "none"})`, Result: `error: {:cause "none"}`, Output: ``},
		}},
		{Name: "not bootstrap", Tests: wisptest.TestSequence{
			{Expr: `(not true)`, Result: `false`, Output: ``},
			{Expr: `(not false)`, Result: `true`, Output: ``},
			{Expr: `(not nil)`, Result: `true`, Output: ``},
			{Expr: `(not 0)`, Result: `false`, Output: ``},
		}},
		{Name: "eval and read-string", Tests: wisptest.TestSequence{
			{Expr: `(read-string "(+ 1 2)")`, Result: `(+ 1 2)`, Output: ``},
			{Expr: `(read-string "")`, Result: `nil`, Output: ``},
			{Expr: `(read-string "; just a comment")`, Result: `nil`, Output: ``},
			{Expr: `(eval (read-string "(+ 1 2)"))`, Result: `3`, Output: ``},
			{Expr: `(eval (read-string "(def! from-eval 11)"))`, Result: `11`, Output: ``},
			{Expr: `from-eval`, Result: `11`, Output: ``},
		}},
	}
	runner := &wisptest.Runner{}
	runner.RunTestSuite(t, tests)
}
