package service

// CreationWaiters reports how many callers are inside the shared
// conversation creation.
func (s *ChatService) CreationWaiters() int32 {
	return s.creationWaiters.Load()
}
