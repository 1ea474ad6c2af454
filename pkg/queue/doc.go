/*
Package queue provides the concurrent containers backing the stealpool
package: a shared blocking FIFO queue and a per-worker stealing deque.

Queue is the shared entry path for work arriving from outside a pool. Push
and TryPop never block; Pop blocks until an item is available or the
context is cancelled, waking one waiter per pushed item.

Deque carries one worker's pending tasks. The owner pushes and pops at one
end (LIFO, keeping recently spawned work cache-warm) while idle peers steal
from the other end (FIFO, oldest task first). Every operation is try-style
and guarded by the deque's own mutex, so no operation ever waits for work
to appear and no two locks are ever held together.

Both containers are generic and safe for concurrent use.
*/
package queue
