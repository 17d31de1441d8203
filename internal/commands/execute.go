package commands

import "fmt"

type Result struct {
	Message string
	Exit    bool
}

type Handlers struct {
	Exit   func() (Result, error)
	List   func() (Result, error)
	Help   func() (Result, error)
	Find   func(FindArgs) (Result, error)
	Mark   func(IndexArgs) (Result, error)
	Unmark func(IndexArgs) (Result, error)
	Delete func(IndexArgs) (Result, error)
	Add    func(AddArgs) (Result, error)
	Sort   func(SortArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeExit:
		if handlers.Exit == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Exit()
	case TypeList:
		if handlers.List == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.List()
	case TypeHelp:
		if handlers.Help == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Help()
	case TypeFind:
		if handlers.Find == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Find(*cmd.Find)
	case TypeMark:
		if handlers.Mark == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Mark(*cmd.Index)
	case TypeUnmark:
		if handlers.Unmark == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Unmark(*cmd.Index)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Delete(*cmd.Index)
	case TypeTodo, TypeDeadline, TypeEvent:
		if handlers.Add == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeSort:
		if handlers.Sort == nil {
			return Result{}, missingHandler(cmd.Type)
		}
		return handlers.Sort(*cmd.Sort)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missingHandler(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
