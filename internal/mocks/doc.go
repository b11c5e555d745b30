// Package mocks provides hand-written test doubles shared across packages.
//
// Each mock exposes function fields that override a method's behavior and
// plain fields holding the default return values:
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
//	        return nil, &service.TaskNotFoundError{UUID: id}
//	    },
//	}
package mocks
