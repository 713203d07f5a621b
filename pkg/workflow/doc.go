// Package workflow runs named, ordered sequences of steps against a shared
// context value.
//
// A Workflow is assembled with the fluent Builder and is immutable once built,
// so the same value can be executed any number of times:
//
//	wf := workflow.New[*Car]("startup", "Bring the car online").
//		Step("engine", "Start the engine", startEngine).
//		Step("fuel", "Set fuel level", setFuel).
//		Build()
//
//	if err := wf.Execute(ctx, car); err != nil {
//		var se *workflow.StepError
//		errors.As(err, &se) // se.Step names the failed step
//	}
//
// Execution is strictly sequential and aborts on the first failure. There is
// no rollback: steps that already ran keep their effects.
package workflow
